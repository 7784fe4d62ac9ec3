package activity

import (
	"strings"
	"time"
)

// SettingsEventInput describes the common fields for settings lifecycle
// events.
type SettingsEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	ObjectID   string
	Channel    string
	Recipients []string
	Metadata   map[string]any
	Option     string
	OldValue   any
	NewValue   any
	OccurredAt time.Time
}

// BuildOptionDeclaredEvent constructs an event for a new declaration.
func BuildOptionDeclaredEvent(input SettingsEventInput) Event {
	return buildSettingsEvent("settings.declared", "settings.option", input)
}

// BuildOptionUpdatedEvent constructs an event for a successful SetValue.
func BuildOptionUpdatedEvent(input SettingsEventInput) Event {
	return buildSettingsEvent("settings.updated", "settings.option", input)
}

// BuildOptionRemovedEvent constructs an event for a removed declaration's
// cleared slot.
func BuildOptionRemovedEvent(input SettingsEventInput) Event {
	return buildSettingsEvent("settings.removed", "settings.option", input)
}

// BuildStoreFrozenEvent constructs an event for the freeze transition.
func BuildStoreFrozenEvent(input SettingsEventInput) Event {
	return buildSettingsEvent("settings.frozen", "settings.store", input)
}

// BuildStoreResetEvent constructs an event for a store reset.
func BuildStoreResetEvent(input SettingsEventInput) Event {
	return buildSettingsEvent("settings.reset", "settings.store", input)
}

// BuildCompilerAppliedEvent constructs an event for a compiler bulk set.
func BuildCompilerAppliedEvent(input SettingsEventInput) Event {
	return buildSettingsEvent("settings.compiler.applied", "settings.compiler", input)
}

func buildSettingsEvent(verb, objectType string, input SettingsEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Option != "" {
		metadata = ensureMetadata(metadata)
		metadata["option"] = input.Option
	}
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	recipients := input.Recipients
	if len(recipients) > 0 {
		recipients = append([]string{}, input.Recipients...)
	}

	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Option)
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Recipients: recipients,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
