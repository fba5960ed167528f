package config

import (
	"fmt"
	"strings"

	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// SupportedMajorVersion is the schema major version this build reads.
const SupportedMajorVersion = "1"

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return apperrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	major, _, _ := strings.Cut(cfg.Version, ".")
	if major != SupportedMajorVersion {
		return apperrors.NewValidationError("version", fmt.Sprintf("unsupported schema version %q", cfg.Version), nil)
	}

	return nil
}
