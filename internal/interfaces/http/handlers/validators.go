package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"stremini.backend/internal/domain/entities"
)

var registerOnce sync.Once

// RegisterValidators installs the enum binding rules used by request payloads:
// team_category, user_role, status_filter and dashboard_tab.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("team_category", func(fl validator.FieldLevel) bool {
			return entities.TeamCategory(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
			return entities.Role(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("status_filter", validateStatusFilter)
		_ = v.RegisterValidation("dashboard_tab", validateDashboardTab)
	})
}

// pointer fields reach the validator dereferenced
func validateStatusFilter(fl validator.FieldLevel) bool {
	return entities.StatusFilter(fl.Field().String()).Valid()
}

func validateDashboardTab(fl validator.FieldLevel) bool {
	return entities.DashboardTab(fl.Field().String()).Valid()
}
