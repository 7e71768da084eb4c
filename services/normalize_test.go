package services

import (
	"testing"

	"main/model"
)

func TestNormalizeResourceSet(t *testing.T) {
	t.Run("NilResult", func(t *testing.T) {
		result := NormalizeResourceSet(nil)
		if result.Analysis != placeholderAnalysis {
			t.Errorf("expected placeholder analysis, got %q", result.Analysis)
		}
		if result.Recommendations != placeholderRecommendations {
			t.Errorf("expected placeholder recommendations, got %q", result.Recommendations)
		}
		if result.Resources == nil || len(result.Resources) != 0 {
			t.Errorf("expected empty resources slice, got %v", result.Resources)
		}
	})

	t.Run("MissingResourceFields", func(t *testing.T) {
		empty := ""
		result := NormalizeResourceSet(&model.ResourceSet{
			Analysis: "fine",
			Resources: []model.Resource{
				{Title: "  ", Description: "", Type: "podcast", URL: &empty},
			},
			Recommendations: "fine too",
		})

		res := result.Resources[0]
		if res.Title != placeholderTitle {
			t.Errorf("expected placeholder title, got %q", res.Title)
		}
		if res.Description != placeholderDescription {
			t.Errorf("expected placeholder description, got %q", res.Description)
		}
		if res.Type != model.ResourceTypeAnalysis {
			t.Errorf("expected invalid type to become analysis, got %q", res.Type)
		}
		if res.URL != nil {
			t.Error("expected blank URL to become nil")
		}
	})

	t.Run("ValidFieldsUntouched", func(t *testing.T) {
		url := "https://example.org"
		result := NormalizeResourceSet(&model.ResourceSet{
			Analysis: "summary",
			Resources: []model.Resource{
				{Title: "t", Description: "d", Type: model.ResourceTypeTechnique, URL: &url},
			},
			Recommendations: "r",
		})

		res := result.Resources[0]
		if res.Title != "t" || res.Description != "d" || res.Type != model.ResourceTypeTechnique {
			t.Errorf("valid resource was modified: %+v", res)
		}
		if res.URL == nil || *res.URL != url {
			t.Error("valid URL was modified")
		}
		if result.Analysis != "summary" || result.Recommendations != "r" {
			t.Error("valid free-text fields were modified")
		}
	})

	t.Run("AllResourceTypesAccepted", func(t *testing.T) {
		for _, typ := range []string{
			model.ResourceTypeArticle, model.ResourceTypeExercise,
			model.ResourceTypeTechnique, model.ResourceTypeTool,
			model.ResourceTypeAnalysis,
		} {
			result := NormalizeResourceSet(&model.ResourceSet{
				Resources: []model.Resource{{Title: "t", Description: "d", Type: typ}},
			})
			if result.Resources[0].Type != typ {
				t.Errorf("type %q should be accepted, got %q", typ, result.Resources[0].Type)
			}
		}
	})
}
