// Package stac provides lightweight decoding of the STAC records served by the
// catalog API. Only the fields the client depends on are validated; unrecognized
// fields are preserved in Extra so catalog extensions survive a round trip.
package stac

import (
	"encoding/json"
	"fmt"

	goversion "github.com/hashicorp/go-version"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

// MinSTACVersion is the oldest stac_version this client accepts.
const MinSTACVersion = "0.6.0"

// Collection is a decoded STAC collection record.
type Collection struct {
	ID          string
	StacVersion string
	Description string
	License     string
	Title       string
	Keywords    []string
	Extent      json.RawMessage
	Links       []Link
	// Extra holds all fields not mapped above.
	Extra map[string]json.RawMessage
}

// Item is a decoded STAC item record.
type Item struct {
	ID         string
	Collection string
	Properties json.RawMessage
	Assets     json.RawMessage
	// Extra holds all fields not mapped above.
	Extra map[string]json.RawMessage
}

// Link is a STAC link object.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

// ParseCollection decodes a collection record, validating the fields the client
// reads and checking the declared stac_version against MinSTACVersion.
func ParseCollection(data []byte) (*Collection, error) {
	fields, err := decodeFields(data)
	if err != nil {
		return nil, err
	}

	var c Collection
	if err := popString(fields, "id", &c.ID); err != nil {
		return nil, err
	}
	if err := popString(fields, "stac_version", &c.StacVersion); err != nil {
		return nil, err
	}
	if err := checkVersion(c.StacVersion); err != nil {
		return nil, err
	}
	if err := popString(fields, "description", &c.Description); err != nil {
		return nil, err
	}
	if err := popString(fields, "license", &c.License); err != nil {
		return nil, err
	}

	if raw, ok := fields["extent"]; ok {
		c.Extent = raw
		delete(fields, "extent")
	} else {
		return nil, fmt.Errorf("extent: %w", ErrMissingField)
	}

	if raw, ok := fields["title"]; ok {
		if err := json.Unmarshal(raw, &c.Title); err != nil {
			return nil, errors.Wrap(ErrRecordInvalid, "title: "+err.Error())
		}
		delete(fields, "title")
	}
	if raw, ok := fields["keywords"]; ok {
		if err := json.Unmarshal(raw, &c.Keywords); err != nil {
			return nil, errors.Wrap(ErrRecordInvalid, "keywords: "+err.Error())
		}
		delete(fields, "keywords")
	}
	if raw, ok := fields["links"]; ok {
		if err := json.Unmarshal(raw, &c.Links); err != nil {
			return nil, errors.Wrap(ErrRecordInvalid, "links: "+err.Error())
		}
		delete(fields, "links")
	}

	c.Extra = fields
	return &c, nil
}

// ParseItem decodes an item record. Items are passed through mostly opaque; only
// the identifying fields are validated.
func ParseItem(data []byte) (*Item, error) {
	fields, err := decodeFields(data)
	if err != nil {
		return nil, err
	}

	var it Item
	if err := popString(fields, "id", &it.ID); err != nil {
		return nil, err
	}
	if raw, ok := fields["collection"]; ok {
		if err := json.Unmarshal(raw, &it.Collection); err != nil {
			return nil, errors.Wrap(ErrRecordInvalid, "collection: "+err.Error())
		}
		delete(fields, "collection")
	}
	if raw, ok := fields["properties"]; ok {
		it.Properties = raw
		delete(fields, "properties")
	}
	if raw, ok := fields["assets"]; ok {
		it.Assets = raw
		delete(fields, "assets")
	}

	it.Extra = fields
	return &it, nil
}

func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(ErrRecordInvalid, err.Error())
	}
	return fields, nil
}

func popString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrMissingField)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrap(ErrRecordInvalid, key+": "+err.Error())
	}
	if *dst == "" {
		return fmt.Errorf("%s: %w", key, ErrMissingField)
	}
	delete(fields, key)
	return nil
}

func checkVersion(raw string) error {
	declared, err := goversion.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("stac_version %q: %w", raw, ErrRecordInvalid)
	}
	minimum := goversion.Must(goversion.NewVersion(MinSTACVersion))
	if declared.LessThan(minimum) {
		return fmt.Errorf("stac_version %s is older than %s: %w", raw, MinSTACVersion, ErrVersionUnsupported)
	}
	return nil
}
