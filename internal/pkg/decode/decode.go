// Package decode maps loosely typed JSON values onto typed records.
package decode

import "github.com/mitchellh/mapstructure"

// Weak decodes in onto out using mapstructure tags. Numbers given as strings
// and single values given where a list is expected are accepted.
func Weak(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
