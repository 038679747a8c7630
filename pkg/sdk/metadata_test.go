package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMetadata(t *testing.T) {
	md := Metadata{
		"serial":   "SN-1042",
		"firmware": "2.4.1",
		"port":     float64(8883),
	}

	var out struct {
		Serial   string `mapstructure:"serial"`
		Firmware string `mapstructure:"firmware"`
		Port     int    `mapstructure:"port"`
	}

	require.NoError(t, DecodeMetadata(md, &out))
	assert.Equal(t, "SN-1042", out.Serial)
	assert.Equal(t, 8883, out.Port)
}

func TestDecodeMetadataTypeMismatch(t *testing.T) {
	md := Metadata{"port": "not-a-number"}

	var out struct {
		Port int `mapstructure:"port"`
	}
	assert.Error(t, DecodeMetadata(md, &out))
}
