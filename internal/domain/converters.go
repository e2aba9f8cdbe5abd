package domain

import (
	"fmt"
	"strings"
)

// DefaultConvertersFile is where the converters settings live inside a Unity
// project, next to the asset the editor integration reads.
const DefaultConvertersFile = "Assets/Resources/Newtonsoft.Json-for-Unity.Converters.yaml"

// ConverterGroup names one of the three converter lists.
type ConverterGroup string

const (
	GroupOutside ConverterGroup = "outside"
	GroupUnity   ConverterGroup = "unity"
	GroupJSONNet ConverterGroup = "json_net"
)

// ValidConverterGroups enumerates all converter groups.
var ValidConverterGroups = []ConverterGroup{GroupOutside, GroupUnity, GroupJSONNet}

// Serializer setting values. They are carried verbatim to the JSON library.
var (
	TypeNameHandlingValues      = []string{"None", "Objects", "Arrays", "All", "Auto"}
	NullValueHandlingValues     = []string{"Include", "Ignore"}
	DefaultValueHandlingValues  = []string{"Include", "Ignore", "Populate", "IgnoreAndPopulate"}
	ReferenceLoopHandlingValues = []string{"Error", "Ignore", "Serialize"}
	FormattingValues            = []string{"None", "Indented"}
	DateFormatHandlingValues    = []string{"IsoDateFormat", "MicrosoftDateFormat"}
	MissingMemberHandlingValues = []string{"Ignore", "Error"}
)

// ConverterEntry toggles a single converter by its full type name.
type ConverterEntry struct {
	Name    string `yaml:"name"    json:"name"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// ConvertersConfig selects which JSON converters get registered and the
// default serializer settings applied alongside them.
type ConvertersConfig struct {
	UseUnityContractResolver bool `yaml:"use_unity_contract_resolver" json:"use_unity_contract_resolver"`

	UseAllOutsideConverters bool             `yaml:"use_all_outside_converters" json:"use_all_outside_converters"`
	OutsideConverters       []ConverterEntry `yaml:"outside_converters"         json:"outside_converters"`

	UseAllUnityConverters bool             `yaml:"use_all_unity_converters" json:"use_all_unity_converters"`
	UnityConverters       []ConverterEntry `yaml:"unity_converters"         json:"unity_converters"`

	UseAllJSONNetConverters bool             `yaml:"use_all_json_net_converters" json:"use_all_json_net_converters"`
	JSONNetConverters       []ConverterEntry `yaml:"json_net_converters"         json:"json_net_converters"`

	AutoSyncConverters bool `yaml:"auto_sync_converters" json:"auto_sync_converters"`

	TypeNameHandling      string `yaml:"type_name_handling"      json:"type_name_handling"`
	NullValueHandling     string `yaml:"null_value_handling"     json:"null_value_handling"`
	DefaultValueHandling  string `yaml:"default_value_handling"  json:"default_value_handling"`
	ReferenceLoopHandling string `yaml:"reference_loop_handling" json:"reference_loop_handling"`
	Formatting            string `yaml:"formatting"              json:"formatting"`
	DateFormatHandling    string `yaml:"date_format_handling"    json:"date_format_handling"`
	MissingMemberHandling string `yaml:"missing_member_handling" json:"missing_member_handling"`
}

// DefaultConvertersConfig returns the settings a freshly created asset has.
func DefaultConvertersConfig() ConvertersConfig {
	return ConvertersConfig{
		UseUnityContractResolver: true,
		UseAllOutsideConverters:  true,
		OutsideConverters:        []ConverterEntry{},
		UseAllUnityConverters:    true,
		UnityConverters:          []ConverterEntry{},
		UseAllJSONNetConverters:  false,
		JSONNetConverters: []ConverterEntry{
			{Name: "Newtonsoft.Json.Converters.StringEnumConverter", Enabled: true},
			{Name: "Newtonsoft.Json.Converters.VersionConverter", Enabled: true},
		},
		AutoSyncConverters:    true,
		TypeNameHandling:      "None",
		NullValueHandling:     "Include",
		DefaultValueHandling:  "Include",
		ReferenceLoopHandling: "Error",
		Formatting:            "None",
		DateFormatHandling:    "IsoDateFormat",
		MissingMemberHandling: "Ignore",
	}
}

// Validate checks the enum-valued settings and converter entries.
func (c ConvertersConfig) Validate() error {
	enums := []struct {
		key   string
		value string
		valid []string
	}{
		{"type_name_handling", c.TypeNameHandling, TypeNameHandlingValues},
		{"null_value_handling", c.NullValueHandling, NullValueHandlingValues},
		{"default_value_handling", c.DefaultValueHandling, DefaultValueHandlingValues},
		{"reference_loop_handling", c.ReferenceLoopHandling, ReferenceLoopHandlingValues},
		{"formatting", c.Formatting, FormattingValues},
		{"date_format_handling", c.DateFormatHandling, DateFormatHandlingValues},
		{"missing_member_handling", c.MissingMemberHandling, MissingMemberHandlingValues},
	}
	for _, e := range enums {
		if !contains(e.valid, e.value) {
			return fmt.Errorf("unknown %s %q (valid: %s)", e.key, e.value, strings.Join(e.valid, ", "))
		}
	}

	for _, g := range ValidConverterGroups {
		seen := make(map[string]bool)
		for i, entry := range c.Entries(g) {
			if strings.TrimSpace(entry.Name) == "" {
				return fmt.Errorf("%s_converters[%d].name must not be empty", g, i)
			}
			if seen[entry.Name] {
				return fmt.Errorf("duplicate converter %q in %s_converters", entry.Name, g)
			}
			seen[entry.Name] = true
		}
	}

	return nil
}

// UsesAll reports whether every converter of the group is registered
// regardless of its list.
func (c ConvertersConfig) UsesAll(g ConverterGroup) bool {
	switch g {
	case GroupOutside:
		return c.UseAllOutsideConverters
	case GroupUnity:
		return c.UseAllUnityConverters
	case GroupJSONNet:
		return c.UseAllJSONNetConverters
	}
	return false
}

// IsEnabled reports whether the named converter of a group gets registered.
// Converters absent from an explicit list are disabled.
func (c ConvertersConfig) IsEnabled(g ConverterGroup, name string) bool {
	if c.UsesAll(g) {
		return true
	}
	for _, e := range c.Entries(g) {
		if e.Name == name {
			return e.Enabled
		}
	}
	return false
}

// EnabledConverters lists the explicitly enabled converter names of a group.
// It returns nil when the group registers everything.
func (c ConvertersConfig) EnabledConverters(g ConverterGroup) []string {
	if c.UsesAll(g) {
		return nil
	}
	var names []string
	for _, e := range c.Entries(g) {
		if e.Enabled {
			names = append(names, e.Name)
		}
	}
	return names
}

// Entries returns the explicit converter list of a group.
func (c ConvertersConfig) Entries(g ConverterGroup) []ConverterEntry {
	switch g {
	case GroupOutside:
		return c.OutsideConverters
	case GroupUnity:
		return c.UnityConverters
	case GroupJSONNet:
		return c.JSONNetConverters
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
