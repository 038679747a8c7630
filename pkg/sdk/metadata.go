package sdk

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Metadata is the free-form JSON object the platform attaches to users,
// things, channels, groups and bootstrap configs. The platform imposes no
// schema on it.
type Metadata map[string]interface{}

// DecodeMetadata decodes md into out, which must be a pointer to a
// struct. Field matching follows mapstructure conventions, so callers can
// steer it with `mapstructure` tags.
func DecodeMetadata(md Metadata, out interface{}) error {
	if err := mapstructure.Decode(md, out); err != nil {
		return fmt.Errorf("failed to decode metadata: %w", err)
	}
	return nil
}
