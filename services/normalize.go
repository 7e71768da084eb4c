package services

import (
	"strings"

	"main/model"
)

// Placeholder values substituted for fields the provider left out or
// mangled. Persisting these beats persisting a half-formed object.
const (
	placeholderTitle           = "Untitled resource"
	placeholderDescription     = "No description provided"
	placeholderAnalysis        = "No analysis provided"
	placeholderRecommendations = "No recommendations provided"
)

// NormalizeResourceSet fills defaults for any missing or invalid subfields
// of an analyzer result. The provider's output format is not under our
// control, so the shape is enforced here before anything is persisted.
func NormalizeResourceSet(result *model.ResourceSet) *model.ResourceSet {
	if result == nil {
		result = &model.ResourceSet{}
	}

	if strings.TrimSpace(result.Analysis) == "" {
		result.Analysis = placeholderAnalysis
	}
	if strings.TrimSpace(result.Recommendations) == "" {
		result.Recommendations = placeholderRecommendations
	}

	if result.Resources == nil {
		result.Resources = []model.Resource{}
	}
	for i := range result.Resources {
		normalizeResource(&result.Resources[i])
	}
	return result
}

func normalizeResource(res *model.Resource) {
	if strings.TrimSpace(res.Title) == "" {
		res.Title = placeholderTitle
	}
	if strings.TrimSpace(res.Description) == "" {
		res.Description = placeholderDescription
	}
	if !validResourceType(res.Type) {
		res.Type = model.ResourceTypeAnalysis
	}
	if res.URL != nil && strings.TrimSpace(*res.URL) == "" {
		res.URL = nil
	}
}

func validResourceType(t string) bool {
	switch t {
	case model.ResourceTypeArticle, model.ResourceTypeExercise,
		model.ResourceTypeTechnique, model.ResourceTypeTool,
		model.ResourceTypeAnalysis:
		return true
	}
	return false
}
