package cursor

import "github.com/iancoleman/strcase"

// KeyStrategy maps schema keys to and from document keys.
type KeyStrategy interface {
	// ToDocument returns the document spelling of a schema key.
	ToDocument(key string) string
	// FromDocument returns the schema spelling of a document key.
	FromDocument(key string) string
}

var (
	// Identity uses schema keys as document keys.
	Identity KeyStrategy = identity{}
	// SnakeCase stores camelCase schema keys as snake_case document keys.
	SnakeCase KeyStrategy = snakeCase{}
)

type identity struct{}

func (identity) ToDocument(key string) string   { return key }
func (identity) FromDocument(key string) string { return key }

type snakeCase struct{}

func (snakeCase) ToDocument(key string) string {
	return strcase.ToSnake(key)
}

func (snakeCase) FromDocument(key string) string {
	return strcase.ToLowerCamel(key)
}
