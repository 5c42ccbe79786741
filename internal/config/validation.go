package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // The config section concerned (e.g. "vrrp", "lvs.sync_daemon")
	FieldPath string // Dot-notation field path (e.g. "mail.smtp_connect_timeout")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateConfig runs the post-parse consistency checks that no single
// directive handler can perform on its own, and returns all findings.
func (c *GlobalConfig) ValidateConfig() error {
	var validationErrors ValidationErrors

	if err := validate.Struct(c); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "", "")...)
	}

	validationErrors = append(validationErrors, c.validateMail()...)
	validationErrors = append(validationErrors, c.validateSyncDaemon()...)
	validationErrors = append(validationErrors, c.validateNotifyFIFOs()...)

	if c.DBus.ServiceName != "" && !c.DBus.Enable {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  "dbus",
			FieldPath: "service_name",
			Message:   "dbus_service_name has no effect without enable_dbus",
		})
	}

	if c.NamespaceWithIPSets && c.NetNamespace == "" {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "namespace_with_ipsets",
			Message:   "namespace_with_ipsets has no effect without net_namespace",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (c *GlobalConfig) validateMail() ValidationErrors {
	var validationErrors ValidationErrors

	alerting := c.Mail.SMTPAlert || c.Mail.SMTPAlertVRRP || c.Mail.SMTPAlertChecker

	if alerting && !c.Mail.SMTPServer.IsValid() {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  "mail",
			FieldPath: "smtp_server",
			Message:   "smtp alerts are enabled but no smtp_server is configured",
		})
	}
	if alerting && len(c.Mail.NotificationEmails) == 0 {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  "mail",
			FieldPath: "notification_email",
			Message:   "smtp alerts are enabled but no notification_email is configured",
		})
	}
	if c.Mail.EmailFrom == "" && len(c.Mail.NotificationEmails) > 0 {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  "mail",
			FieldPath: "notification_email_from",
			Message:   "notification recipients are configured but no sender address is set",
		})
	}

	return validationErrors
}

func (c *GlobalConfig) validateSyncDaemon() ValidationErrors {
	var validationErrors ValidationErrors
	sd := &c.LVS.SyncDaemon

	if sd.Interface == "" {
		// Sync daemon not configured. Sub-option state left behind by a
		// rejected lvs_sync_daemon line is not an error.
		return nil
	}

	if sd.VRRPInstance == "" {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  "lvs.sync_daemon",
			FieldPath: "vrrp_instance",
			Message:   "sync daemon requires a vrrp_instance to track",
		})
	}
	if sd.McastGroup.IsValid() && !sd.McastGroup.IsMulticast() {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  "lvs.sync_daemon",
			FieldPath: "mcast_group",
			Message:   fmt.Sprintf("group address %s is not multicast", sd.McastGroup),
		})
	}

	return validationErrors
}

func (c *GlobalConfig) validateNotifyFIFOs() ValidationErrors {
	var validationErrors ValidationErrors

	fifos := []struct {
		name string
		fifo *NotifyFIFO
	}{
		{"notify_fifo", &c.NotifyFIFO},
		{"vrrp_notify_fifo", &c.VRRP.NotifyFIFO},
		{"lvs_notify_fifo", &c.LVS.NotifyFIFO},
	}
	for _, f := range fifos {
		if len(f.fifo.Script) > 0 && f.fifo.Name == "" {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  f.name,
				FieldPath: "script",
				Message:   "fifo script is configured but no fifo path is set",
			})
		}
	}

	return validationErrors
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because of the registered TagNameFunc
				fieldName := e.Field()

				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + fieldName
				} else {
					fieldPath = fieldName
				}
			}

			message := getValidationMessage(e)

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   message,
			})
		}
	}

	return validationErrors
}
