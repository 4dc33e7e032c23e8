package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

func parsePackage(t *testing.T, files map[string]string) *packages.Package {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	pkg := &packages.Package{
		Name: "example",
		Fset: fset,
	}
	for _, name := range names {
		file, err := parser.ParseFile(fset, name, files[name], parser.ParseComments)
		require.NoError(t, err)
		pkg.Syntax = append(pkg.Syntax, file)
	}
	return pkg
}

func scan(t *testing.T, files map[string]string) ([]providerDefinition, *importTable, error) {
	t.Helper()

	logger := zerolog.Nop()
	imports := newImportTable()
	providers, err := scanProviders(&logger, parsePackage(t, files), imports)
	return providers, imports, err
}

func Test_scanProviders(t *testing.T) {
	t.Run("it should collect annotated constructors", func(t *testing.T) {
		// GIVEN
		files := map[string]string{"motor.go": `package example

import "github.com/rs/zerolog"

type (
	Engine struct{}
	Car    struct{}
)

// NewEngine provides the engine
//
// @provide
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{}
}

// @provide
func NewCar(engine *Engine) (*Car, error) {
	return &Car{}, nil
}

func NewIgnored() *Engine {
	return &Engine{}
}
`}

		// WHEN
		providers, _, err := scan(t, files)

		// THEN
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Equal(t, providerDefinition{
			fnName:       "NewCar",
			bindType:     "*Car",
			returnsError: true,
			paramTypes:   []string{"*Engine"},
		}, providers[0])
		assert.Equal(t, providerDefinition{
			fnName:      "NewEngine",
			description: "NewEngine provides the engine",
			bindType:    "*Engine",
			paramTypes:  []string{"zerolog.Logger"},
		}, providers[1])
	})

	t.Run("it should register under the type given by the as property", func(t *testing.T) {
		// GIVEN
		files := map[string]string{"horn.go": `package example

type (
	Horn interface {
		Honk() string
	}
	AirHorn struct{}
)

func (h *AirHorn) Honk() string { return "HONK" }

// NewAirHorn provides the default horn
//
// @provide as=Horn
func NewAirHorn() *AirHorn {
	return &AirHorn{}
}
`}

		// WHEN
		providers, _, err := scan(t, files)

		// THEN
		require.NoError(t, err)
		require.Len(t, providers, 1)
		assert.Equal(t, providerDefinition{
			fnName:      "NewAirHorn",
			description: "NewAirHorn provides the default horn",
			bindType:    "Horn",
		}, providers[0])
	})

	t.Run("it should skip generated files", func(t *testing.T) {
		// GIVEN
		files := map[string]string{"motor_gen.go": `package example

type Engine struct{}

// @provide
func NewEngine() *Engine {
	return &Engine{}
}
`}

		// WHEN
		providers, _, err := scan(t, files)

		// THEN
		require.NoError(t, err)
		assert.Empty(t, providers)
	})

	t.Run("it should reject providers returning nothing", func(t *testing.T) {
		// GIVEN
		files := map[string]string{"boom.go": `package example

// @provide
func Boom() {
}
`}

		// WHEN
		_, _, err := scan(t, files)

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Boom")
		assert.Contains(t, err.Error(), "must return a value")
	})

	t.Run("it should reject a second result that is not an error", func(t *testing.T) {
		// GIVEN
		files := map[string]string{"pair.go": `package example

type (
	Engine struct{}
	Car    struct{}
)

// @provide
func NewPair() (*Engine, *Car) {
	return nil, nil
}
`}

		// WHEN
		_, _, err := scan(t, files)

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "second result of a provider must be an error")
	})

	t.Run("it should reject methods annotated as providers", func(t *testing.T) {
		// GIVEN
		files := map[string]string{"method.go": `package example

type Engine struct{}

// @provide
func (e *Engine) Clone() *Engine {
	return e
}
`}

		// WHEN
		_, _, err := scan(t, files)

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "methods can not be providers")
	})

	t.Run("it should give colliding package names distinct aliases", func(t *testing.T) {
		// GIVEN
		files := map[string]string{
			"first.go": `package example

import log "github.com/acme/logging"

type A struct{}

// @provide
func NewA(logger *log.Logger) *A {
	return &A{}
}
`,
			"second.go": `package example

import log "github.com/other/logging"

type B struct{}

// @provide
func NewB(logger *log.Logger) *B {
	return &B{}
}
`,
		}

		// WHEN
		providers, imports, err := scan(t, files)

		// THEN
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Equal(t, []string{"*logging.Logger"}, providers[0].paramTypes)
		assert.Equal(t, []string{"*ologging.Logger"}, providers[1].paramTypes)
		assert.Equal(t, map[string]string{
			"github.com/acme/logging":  "logging",
			"github.com/other/logging": "ologging",
		}, imports.aliases)
	})
}

func Test_parseProvideAnnotation(t *testing.T) {
	t.Run("it should split description and properties", func(t *testing.T) {
		// WHEN
		annotation := parseProvideAnnotation("Builds the thing.\n\n@provide as=Horn\n")

		// THEN
		assert.Equal(t, "Builds the thing.", annotation.description)
		typeExpr, found := annotation.As()
		assert.True(t, found)
		assert.Equal(t, "Horn", typeExpr)
	})

	t.Run("it should handle a bare annotation", func(t *testing.T) {
		// WHEN
		annotation := parseProvideAnnotation("@provide\n")

		// THEN
		assert.Empty(t, annotation.description)
		_, found := annotation.As()
		assert.False(t, found)
		assert.Empty(t, annotation.UnknownProperties())
	})

	t.Run("it should report unknown properties", func(t *testing.T) {
		// WHEN
		annotation := parseProvideAnnotation("@provide named=foo\n")

		// THEN
		assert.Equal(t, []string{"named"}, annotation.UnknownProperties())
	})
}

func Test_parseProperties(t *testing.T) {
	t.Run("it should parse simple key=value properties", func(t *testing.T) {
		// WHEN
		result := parseProperties("@provide as=Horn scope=app", "@provide")

		// THEN
		assert.Equal(t, "Horn", result["as"])
		assert.Equal(t, "app", result["scope"])
	})

	t.Run("it should parse quoted values", func(t *testing.T) {
		// WHEN
		result := parseProperties(`@provide as="*io.Writer"`, "@provide")

		// THEN
		assert.Equal(t, "*io.Writer", result["as"])
	})

	t.Run("it should return an empty map when there is no property", func(t *testing.T) {
		// WHEN
		result := parseProperties("@provide", "@provide")

		// THEN
		assert.Empty(t, result)
	})
}

func typeExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	expr, err := parser.ParseExpr(src)
	require.NoError(t, err)
	return expr
}

func Test_formatType(t *testing.T) {
	t.Run("it should render local types", func(t *testing.T) {
		// WHEN
		result, err := formatType(typeExpr(t, "*Engine"), nil, newImportTable())

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "*Engine", result)
	})

	t.Run("it should qualify imported types with their alias", func(t *testing.T) {
		// GIVEN
		imports := newImportTable()
		fileImports := map[string]string{"zerolog": "github.com/rs/zerolog"}

		// WHEN
		result, err := formatType(typeExpr(t, "zerolog.Logger"), fileImports, imports)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "zerolog.Logger", result)
		assert.Equal(t, map[string]string{"github.com/rs/zerolog": "zerolog"}, imports.aliases)
	})

	t.Run("it should render slices and maps", func(t *testing.T) {
		// GIVEN
		imports := newImportTable()

		// WHEN
		sliceType, err1 := formatType(typeExpr(t, "[]string"), nil, imports)
		mapType, err2 := formatType(typeExpr(t, "map[string]*Engine"), nil, imports)

		// THEN
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, "[]string", sliceType)
		assert.Equal(t, "map[string]*Engine", mapType)
	})

	t.Run("it should fail on unknown packages", func(t *testing.T) {
		// WHEN
		_, err := formatType(typeExpr(t, "unknown.Thing"), nil, newImportTable())

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown package unknown")
	})

	t.Run("it should fail on unsupported type expressions", func(t *testing.T) {
		// WHEN
		_, chanErr := formatType(typeExpr(t, "chan int"), nil, newImportTable())
		_, arrayErr := formatType(typeExpr(t, "[4]byte"), nil, newImportTable())

		// THEN
		require.Error(t, chanErr)
		assert.Contains(t, chanErr.Error(), "unsupported type expression")
		require.Error(t, arrayErr)
		assert.Contains(t, arrayErr.Error(), "unsupported array type")
	})
}
