package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/templates"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks field values.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.PackageManager != "" {
		if _, err := pkgmgr.Parse(cfg.PackageManager); err != nil {
			errs = append(errs, ValidationError{
				Field:   "packageManager",
				Message: "must be one of " + strings.Join(pkgmgr.Names(), ", "),
			})
		}
	}

	if err := ValidateRegistry(cfg.Registry); err != nil {
		errs = append(errs, *err)
	}

	if cfg.Template != "" && !templates.IsValid(cfg.Template) {
		errs = append(errs, ValidationError{
			Field:   "template",
			Message: "must be one of " + strings.Join(templates.Names(), ", "),
		})
	}

	if cfg.Email != "" {
		if _, err := mail.ParseAddress(cfg.Email); err != nil {
			errs = append(errs, ValidationError{
				Field:   "email",
				Message: "must be a valid email address",
			})
		}
	}

	if cfg.Author != "" && strings.TrimSpace(cfg.Author) == "" {
		errs = append(errs, ValidationError{
			Field:   "author",
			Message: "must not be empty or whitespace only",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateRegistry accepts default, mirror, custom, or an http(s) URL.
func ValidateRegistry(registry string) *ValidationError {
	switch registry {
	case "", "default", "mirror", "custom":
		return nil
	}

	u, err := url.Parse(registry)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{
			Field:   "registry",
			Message: "must be default, mirror, custom, or an http(s) URL",
		}
	}
	return nil
}

// ValidateFile decodes the file strictly, rejecting unknown keys and
// mistyped values, then validates field values.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return ValidateBytes(data)
}

// ValidateBytes is ValidateFile for in-memory content.
func ValidateBytes(data []byte) error {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return Validate(&cfg)
}
