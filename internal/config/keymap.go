package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sort"
)

// RandomLayer picks any of a key's layer values
const RandomLayer = "random"

// Keymap maps typed keys to replacement text, one value per named layer
type Keymap struct {
	// Layers is in rotation order; Layers[0] is active
	Layers []string
	keys   map[string]map[string]string
}

// NewKeymap returns a keymap with only the random layer
func NewKeymap() *Keymap {
	return &Keymap{Layers: []string{RandomLayer}, keys: map[string]map[string]string{}}
}

// LoadKeymap reads a JSONL keymap: one object per line with a "keypress"
// field and one field per layer
func LoadKeymap(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keymap: %w", err)
	}
	defer func() { _ = f.Close() }()

	km := NewKeymap()
	seen := map[string]bool{}
	var layers []string
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec map[string]string
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("keymap line %d: %w", line, err)
		}
		key, ok := rec["keypress"]
		if !ok {
			return nil, fmt.Errorf("keymap line %d: missing keypress", line)
		}
		delete(rec, "keypress")
		if km.keys[key] == nil {
			km.keys[key] = map[string]string{}
		}
		for layer, v := range rec {
			km.keys[key][layer] = v
			if !seen[layer] {
				seen[layer] = true
				layers = append(layers, layer)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keymap: %w", err)
	}
	sort.Strings(layers)
	km.Layers = append(km.Layers, layers...)
	return km, nil
}

// Active returns the active layer
func (k *Keymap) Active() string {
	return k.Layers[0]
}

// Rotate makes the layer n positions later active; negative n goes back
func (k *Keymap) Rotate(n int) {
	l := len(k.Layers)
	n = ((n % l) + l) % l
	k.Layers = slices.Concat(k.Layers[n:], k.Layers[:n])
}

// Lookup returns the text typed for key in the active layer. Keys without
// a mapping type themselves.
func (k *Keymap) Lookup(key string) string {
	poss := k.keys[key]
	if len(poss) == 0 {
		return key
	}
	if k.Active() != RandomLayer {
		if v, ok := poss[k.Active()]; ok {
			return v
		}
		return key
	}
	vals := make([]string, 0, len(poss))
	for _, v := range poss {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return vals[rand.IntN(len(vals))]
}
