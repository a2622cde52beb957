// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"slices"

	"github.com/sunnydevs-club/parley/pkg/errors"
)

// ProviderKind identifies which API branch serves a model.
type ProviderKind string

const (
	// KindGemini routes to the hosted Gemini API.
	KindGemini ProviderKind = "gemini"
	// KindHFServerless routes to the Hugging Face serverless inference router.
	KindHFServerless ProviderKind = "hf_serverless"
)

// GeminiModels lists the model names served by the Gemini branch.
var GeminiModels = []string{
	"gemini-2.5-flash",
}

// HFServerlessModels lists the model names served by the inference router.
var HFServerlessModels = []string{
	"deepseek-ai/DeepSeek-R1:sambanova",
	"zai-org/GLM-4.5",
}

// Route resolves a model name to its provider kind. Every configured name
// maps to exactly one kind; anything else is a MODEL_NOT_CONFIGURED error.
func Route(model string) (ProviderKind, error) {
	switch {
	case slices.Contains(GeminiModels, model):
		return KindGemini, nil
	case slices.Contains(HFServerlessModels, model):
		return KindHFServerless, nil
	default:
		return "", errors.Newf(errors.CodeModelNotConfigured,
			"model %q not configured for API routing", model)
	}
}

// ModelInfo pairs a model name with its provider kind for listings.
type ModelInfo struct {
	Name     string       `json:"model_name"`
	Provider ProviderKind `json:"provider"`
}

// Catalog returns the configured models, optionally filtered by kind.
// An unrecognized kind is an INVALID_INPUT error.
func Catalog(kind string) ([]ModelInfo, error) {
	if kind != "" && kind != string(KindGemini) && kind != string(KindHFServerless) {
		return nil, errors.Newf(errors.CodeInvalidInput,
			"invalid provider_name %q, must be %q or %q", kind, KindGemini, KindHFServerless)
	}
	var models []ModelInfo
	if kind == "" || kind == string(KindGemini) {
		for _, name := range GeminiModels {
			models = append(models, ModelInfo{Name: name, Provider: KindGemini})
		}
	}
	if kind == "" || kind == string(KindHFServerless) {
		for _, name := range HFServerlessModels {
			models = append(models, ModelInfo{Name: name, Provider: KindHFServerless})
		}
	}
	return models, nil
}
