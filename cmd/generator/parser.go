package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-peyrard/singlet/fn"
	"github.com/a-peyrard/singlet/slices"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

type (
	providerDefinition struct {
		fnName       string
		description  string
		bindType     string
		returnsError bool
		paramTypes   []string
	}

	provideAnnotation struct {
		description string
		properties  map[string]string
	}
)

func (p providerDefinition) String() string {
	return fmt.Sprintf(
		`✨ Provider: %s
Description: %s
Provides: %s
Dependencies: [%s]`,
		p.fnName,
		p.description,
		p.bindType,
		strings.Join(p.paramTypes, ", "),
	)
}

// As returns the type the provider should be registered under, when the
// annotation overrides the constructor return type. This is how an
// implementation gets registered under an interface:
//
//	// @provide as=Horn
//	func NewAirHorn() *AirHorn { ... }
//
// Values containing non word characters must be quoted, as="*io.Writer".
func (a provideAnnotation) As() (typeExpr string, found bool) {
	typeExpr, found = a.properties["as"]
	return typeExpr, found
}

var knownProperties = []string{"as"}

func (a provideAnnotation) UnknownProperties() []string {
	var unknown []string
	for key := range a.properties {
		if !contains(knownProperties, key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// scanProviders walks the package syntax looking for functions annotated
// with @provide. Generated files are skipped, so re-running the generator
// never picks up its own output.
func scanProviders(logger *zerolog.Logger, pkg *packages.Package, imports *importTable) ([]providerDefinition, error) {
	var (
		providers []providerDefinition
		scanErr   error
	)

	for _, file := range pkg.Syntax {
		fileName := filepath.Base(pkg.Fset.Position(file.Pos()).Filename)
		if strings.HasSuffix(fileName, "_gen.go") {
			continue
		}

		fileImports := collectImports(file)

		ast.Inspect(file, func(n ast.Node) bool {
			if scanErr != nil {
				return false
			}
			decl, ok := n.(*ast.FuncDecl)
			if !ok || decl.Doc == nil || !strings.Contains(decl.Doc.Text(), provideAnnotationTag) {
				return true
			}

			logger := logger.With().Str("provider", decl.Name.Name).Logger()
			logger.Debug().Msg("=> Found provider")

			if decl.Recv != nil {
				scanErr = fmt.Errorf("unable to use %s as a provider: methods can not be providers", decl.Name.Name)
				return false
			}

			annotation := parseProvideAnnotation(decl.Doc.Text())
			if unknown := annotation.UnknownProperties(); len(unknown) > 0 {
				logger.Warn().Msgf("Unknown properties on %s annotation: %s, ignoring them", provideAnnotationTag, strings.Join(unknown, ", "))
			}

			definition, err := buildDefinition(decl, annotation, fileImports, imports)
			if err != nil {
				scanErr = fmt.Errorf("unable to use %s as a provider:\n\t%w", decl.Name.Name, err)
				return false
			}

			providers = append(providers, definition)
			return true
		})
	}
	if scanErr != nil {
		return nil, scanErr
	}

	// sort by constructor name so the generated file is stable
	slices.SortBy(providers, fn.Comparing(func(p providerDefinition) string { return p.fnName }))

	return providers, nil
}

func buildDefinition(
	decl *ast.FuncDecl,
	annotation provideAnnotation,
	fileImports map[string]string,
	imports *importTable,
) (providerDefinition, error) {
	results := decl.Type.Results
	if results == nil || len(results.List) == 0 || len(results.List) > 2 {
		return providerDefinition{}, errors.New("a provider must return a value, optionally followed by an error")
	}

	returnsError := len(results.List) == 2
	if returnsError {
		if ident, ok := results.List[1].Type.(*ast.Ident); !ok || ident.Name != "error" {
			return providerDefinition{}, errors.New("the second result of a provider must be an error")
		}
	}

	bindType, err := formatType(results.List[0].Type, fileImports, imports)
	if err != nil {
		return providerDefinition{}, err
	}
	if typeExpr, found := annotation.As(); found {
		expr, err := parser.ParseExpr(typeExpr)
		if err != nil {
			return providerDefinition{}, fmt.Errorf("invalid as property %q:\n\t%w", typeExpr, err)
		}
		if bindType, err = formatType(expr, fileImports, imports); err != nil {
			return providerDefinition{}, err
		}
	}

	var paramTypes []string
	if decl.Type.Params != nil {
		for _, param := range decl.Type.Params.List {
			formatted, err := formatType(param.Type, fileImports, imports)
			if err != nil {
				return providerDefinition{}, err
			}
			// a single field may declare several parameters (a, b int)
			count := len(param.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				paramTypes = append(paramTypes, formatted)
			}
		}
	}

	return providerDefinition{
		fnName:       decl.Name.Name,
		description:  annotation.description,
		bindType:     bindType,
		returnsError: returnsError,
		paramTypes:   paramTypes,
	}, nil
}

// parseProvideAnnotation splits a doc comment into the @provide line,
// parsed for properties, and the free form description around it.
func parseProvideAnnotation(docText string) provideAnnotation {
	lines := strings.Split(docText, "\n")

	var descriptionLines []string
	var provideLine string

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, provideAnnotationTag) {
			provideLine = line
		} else if line != "" && !strings.HasPrefix(line, "@") {
			descriptionLines = append(descriptionLines, line)
		}
	}

	return provideAnnotation{
		description: strings.TrimSpace(strings.Join(descriptionLines, "\n")),
		properties:  parseProperties(provideLine, provideAnnotationTag),
	}
}

func parseProperties(line string, tag string) map[string]string {
	properties := make(map[string]string)

	if line == "" {
		return properties
	}

	content := strings.TrimPrefix(line, tag)
	content = strings.TrimSpace(content)

	if content == "" {
		return properties
	}

	// match key=value or key="value" patterns
	re := regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\w+))`)
	matches := re.FindAllStringSubmatch(content, -1)

	for _, match := range matches {
		key := match[1]
		// match[2] is the quoted value, match[3] the unquoted one
		value := match[2]
		if value == "" {
			value = match[3]
		}
		properties[key] = value
	}

	return properties
}

// collectImports maps the local name of every import of the file to its
// import path.
func collectImports(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path[strings.LastIndex(path, "/")+1:]
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = path
	}
	return imports
}

// formatType renders a type expression the way the generated file will
// spell it, registering any package it mentions on the import table.
func formatType(expr ast.Expr, fileImports map[string]string, imports *importTable) (string, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, nil
	case *ast.StarExpr:
		inner, err := formatType(t.X, fileImports, imports)
		if err != nil {
			return "", err
		}
		return "*" + inner, nil
	case *ast.SelectorExpr:
		ident, ok := t.X.(*ast.Ident)
		if !ok {
			return "", fmt.Errorf("unsupported qualifier in type %s", types.ExprString(expr))
		}
		path, found := fileImports[ident.Name]
		if !found {
			return "", fmt.Errorf("unknown package %s in type %s", ident.Name, types.ExprString(expr))
		}
		return imports.aliasFor(path) + "." + t.Sel.Name, nil
	case *ast.ArrayType:
		if t.Len != nil {
			return "", fmt.Errorf("unsupported array type %s", types.ExprString(expr))
		}
		elem, err := formatType(t.Elt, fileImports, imports)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	case *ast.MapType:
		key, err := formatType(t.Key, fileImports, imports)
		if err != nil {
			return "", err
		}
		value, err := formatType(t.Value, fileImports, imports)
		if err != nil {
			return "", err
		}
		return "map[" + key + "]" + value, nil
	default:
		return "", fmt.Errorf("unsupported type expression %s", types.ExprString(expr))
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
