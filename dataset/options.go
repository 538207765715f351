package dataset

import (
	"fmt"

	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
	"github.com/bvhlab/complexity/internal/options"
)

// LoadConfig controls how Load reads and interprets a resource.
type LoadConfig struct {
	schema      format.Schema
	compression format.CompressionType
	autoDetect  bool
	columnNames []string
}

func defaultLoadConfig() LoadConfig {
	return LoadConfig{
		schema:     format.SchemaComparison,
		autoDetect: true,
	}
}

// LoadOption represents a functional option for configuring Load.
type LoadOption = options.Option[*LoadConfig]

// WithSchema sets the expected column layout. The default is format.SchemaComparison.
func WithSchema(schema format.Schema) LoadOption {
	return options.New(func(c *LoadConfig) error {
		if schema.Fields() == 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidSchema, schema)
		}
		c.schema = schema

		return nil
	})
}

// WithCompression disables extension-based detection and decodes the
// resource with the given compression type.
func WithCompression(comp format.CompressionType) LoadOption {
	return options.New(func(c *LoadConfig) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = comp
			c.autoDetect = false

			return nil
		default:
			return fmt.Errorf("%w: %v", errs.ErrUnsupportedCompression, comp)
		}
	})
}

// WithColumnNames names the value columns in file order.
// The count is checked against the schema when Load runs.
func WithColumnNames(names ...string) LoadOption {
	return options.NoError(func(c *LoadConfig) {
		c.columnNames = append([]string(nil), names...)
	})
}

func (c *LoadConfig) resolveCompression(path string) format.CompressionType {
	if c.autoDetect {
		return format.CompressionFromPath(path)
	}

	return c.compression
}

func (c *LoadConfig) resolveColumns() ([]string, error) {
	if len(c.columnNames) == 0 {
		return c.schema.DefaultColumnNames(), nil
	}
	if len(c.columnNames) != c.schema.ValueColumns() {
		return nil, fmt.Errorf("%w: %s schema has %d value columns, got %d names",
			errs.ErrSchemaMismatch, c.schema, c.schema.ValueColumns(), len(c.columnNames))
	}

	return c.columnNames, nil
}
