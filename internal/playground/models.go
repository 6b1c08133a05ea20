package playground

import (
	"fmt"
	"slices"
)

// Model is a hosted model identifier from the closed set the playground supports.
type Model string

const (
	ModelLlama31_70BVersatile Model = "llama-3.1-70b-versatile"
	ModelLlama31_8BInstant    Model = "llama-3.1-8b-instant"
	ModelLlama3_8B            Model = "llama3-8b-8192"
	ModelLlama3_70B           Model = "llama3-70b-8192"
	ModelMixtral8x7B          Model = "mixtral-8x7b-32768"
	ModelGemma7B              Model = "gemma-7b-it"
	ModelGemma2_9B            Model = "gemma2-9b-it"
)

// DefaultModel is preselected in the main form.
const DefaultModel = ModelLlama31_70BVersatile

// allModels lists every supported model in display order.
var allModels = []Model{
	ModelLlama31_70BVersatile,
	ModelLlama31_8BInstant,
	ModelLlama3_8B,
	ModelLlama3_70B,
	ModelMixtral8x7B,
	ModelGemma7B,
	ModelGemma2_9B,
}

// Slot identifies one side of the comparison panel.
type Slot string

const (
	SlotA Slot = "a"
	SlotB Slot = "b"
)

// slotModels holds the choices offered on each side of the comparison panel.
var slotModels = map[Slot][]Model{
	SlotA: {ModelLlama31_8BInstant, ModelLlama3_8B, ModelLlama3_70B},
	SlotB: {ModelMixtral8x7B, ModelGemma7B, ModelGemma2_9B},
}

// Models returns all supported models in display order.
func Models() []Model {
	return slices.Clone(allModels)
}

// SlotModels returns the models offered for the given comparison slot.
func SlotModels(slot Slot) []Model {
	return slices.Clone(slotModels[slot])
}

// Valid reports whether m is a supported model.
func (m Model) Valid() bool {
	return slices.Contains(allModels, m)
}

func (m Model) String() string { return string(m) }

// ParseModel converts s to a Model, rejecting unsupported identifiers.
func ParseModel(s string) (Model, error) {
	m := Model(s)
	if !m.Valid() {
		return "", &ValidationError{
			Field:   "model",
			Message: fmt.Sprintf("unsupported model %q", s),
		}
	}
	return m, nil
}
