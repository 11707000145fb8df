package store

import (
	"errors"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/goccy/go-json"
	"github.com/hashicorp/go-version"
	hjson "github.com/hjson/hjson-go/v4"

	"github.com/rshade/streamcost-estimator/internal/model"
)

// SupportedSchemas is the range of persisted schema versions that can be read.
const SupportedSchemas = ">= 1.0.0, < 2.0.0"

// legacySchemaVersion is assumed for blobs written before versioning.
const legacySchemaVersion = "1.0.0"

// ErrIncompatibleSchema is returned for blobs outside SupportedSchemas.
var ErrIncompatibleSchema = errors.New("incompatible schema version")

var supportedSchemas = version.MustConstraints(version.NewConstraint(SupportedSchemas))

// Decoding strategies, in the order they are attempted.
const (
	StrategyJSON     = "json"
	StrategyHjson    = "hjson"
	StrategyRepaired = "repaired-json"
)

// DecodeConfiguration parses a persisted or hand-written Configuration and
// merges it over model.DefaultConfiguration: fields absent from data keep
// their default. Parsing falls back from strict JSON to Hjson (hand-written
// files) to repaired JSON (truncated or mangled blobs). The returned strategy
// names the parser that succeeded.
func DecodeConfiguration(data []byte) (model.Configuration, string, error) {
	cfg, err := decodeOver(data)
	strategy := StrategyJSON

	if err != nil {
		var generic any
		if hjsonErr := hjson.Unmarshal(data, &generic); hjsonErr == nil {
			// Hjson yields generic values; round-trip them through JSON for
			// the struct tags.
			normalized, marshalErr := json.Marshal(generic)
			if marshalErr == nil {
				cfg, err = decodeOver(normalized)
				strategy = StrategyHjson
			}
		}
	}

	if err != nil {
		repaired, repairErr := jsonrepair.RepairJSON(string(data))
		if repairErr == nil {
			cfg, err = decodeOver([]byte(repaired))
			strategy = StrategyRepaired
		}
	}

	if err != nil {
		return model.Configuration{}, "", fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := checkSchema(cfg.SchemaVersion); err != nil {
		return model.Configuration{}, "", err
	}
	cfg.SchemaVersion = model.CurrentSchemaVersion
	return cfg, strategy, nil
}

// EncodeConfiguration serializes cfg stamped with the current schema version.
func EncodeConfiguration(cfg model.Configuration) ([]byte, error) {
	cfg.SchemaVersion = model.CurrentSchemaVersion
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return data, nil
}

// decodeOver unmarshals data onto a fresh default Configuration. The schema
// version is cleared first so a missing one can be detected. The channel and
// category lists are replaced wholesale: entries never inherit fields from
// the default record at the same index, and the default lists are kept only
// when data has no such key.
func decodeOver(data []byte) (model.Configuration, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return model.Configuration{}, err
	}

	cfg := model.DefaultConfiguration()
	cfg.SchemaVersion = ""
	if _, ok := keys["channels"]; ok {
		cfg.Channels = nil
	}
	if _, ok := keys["vodCategories"]; ok {
		cfg.VODCategories = nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.Configuration{}, err
	}
	return cfg, nil
}

func checkSchema(raw string) error {
	if raw == "" {
		raw = legacySchemaVersion
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrIncompatibleSchema, raw, err)
	}
	if !supportedSchemas.Check(v) {
		return fmt.Errorf("%w: %s not in %s", ErrIncompatibleSchema, v, SupportedSchemas)
	}
	return nil
}
