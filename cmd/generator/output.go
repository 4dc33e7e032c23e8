package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"

	"github.com/a-peyrard/singlet/fn"
	"github.com/a-peyrard/singlet/set"
	"github.com/a-peyrard/singlet/slices"
)

// importTable assigns a stable alias to every package the generated file
// needs to import.
type importTable struct {
	aliases map[string]string
	used    set.Set[string]
}

func newImportTable() *importTable {
	return &importTable{
		aliases: make(map[string]string),
		// the container import is reserved, no user package may shadow it
		used: set.NewWithValues("singlet"),
	}
}

func (t *importTable) aliasFor(importPath string) string {
	if alias, found := t.aliases[importPath]; found {
		return alias
	}
	alias := findSuitableAlias(importPath, t.used)
	t.aliases[importPath] = alias
	t.used.Add(alias)
	return alias
}

func (t *importTable) paths() []string {
	paths := make([]string, 0, len(t.aliases))
	for path := range t.aliases {
		paths = append(paths, path)
	}
	slices.SortBy(paths, fn.Comparing(func(path string) string { return path }))
	return paths
}

// findSuitableAlias derives an alias from the last token of the import
// path, prepending the first letter of the previous tokens until the alias
// is free. When the whole path is exhausted it falls back on a counter.
func findSuitableAlias(importPath string, taken set.Set[string]) string {
	tokens := strings.Split(importPath, "/")

	candidate := asIdentifier(tokens[len(tokens)-1])
	for idx := len(tokens) - 2; taken.Contains(candidate) && idx >= 0; idx-- {
		if prev := asIdentifier(tokens[idx]); prev != "" {
			candidate = prev[:1] + candidate
		}
	}

	if !taken.Contains(candidate) {
		return candidate
	}

	base := candidate
	for counter := 0; ; counter++ {
		candidate = fmt.Sprintf("%s%d", base, counter)
		if !taken.Contains(candidate) {
			return candidate
		}
	}
}

func asIdentifier(token string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, token)
}

// generate writes the InstallProviders file for the package.
func generate(outputPath string, packageName string, providers []providerDefinition, imports *importTable) error {
	source, err := render(packageName, providers, imports)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, source, 0644)
}

// render produces the generated file, gofmt formatted. Imports are emitted
// in a single block, format.Source takes care of sorting them.
func render(packageName string, providers []providerDefinition, imports *importTable) ([]byte, error) {
	var buf strings.Builder

	fmt.Fprintf(&buf, "// Code generated by %s/cmd/generator. DO NOT EDIT.\n\n", modulePath)
	fmt.Fprintf(&buf, "package %s\n\n", packageName)

	buf.WriteString("import (\n")
	fmt.Fprintf(&buf, "\tsinglet %q\n", modulePath)
	for _, path := range imports.paths() {
		fmt.Fprintf(&buf, "\t%s %q\n", imports.aliases[path], path)
	}
	buf.WriteString(")\n\n")

	buf.WriteString("// InstallProviders registers every annotated constructor of the package.\n")
	buf.WriteString("func InstallProviders(col *singlet.Collection) {\n")
	for _, provider := range providers {
		writeRegistration(&buf, provider)
	}
	buf.WriteString("}\n")

	formatted, err := format.Source([]byte(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("generated code is not valid Go:\n\t%w", err)
	}
	return formatted, nil
}

func writeRegistration(buf *strings.Builder, provider providerDefinition) {
	if provider.description != "" {
		for _, line := range strings.Split(provider.description, "\n") {
			fmt.Fprintf(buf, "\t// %s\n", line)
		}
	}
	fmt.Fprintf(buf, "\tsinglet.Register(col, func(p *singlet.Provider) (res %s, err error) {\n", provider.bindType)

	args := make([]string, len(provider.paramTypes))
	for idx, paramType := range provider.paramTypes {
		fmt.Fprintf(buf, "\t\tv%d, err := singlet.Resolve[%s](p)\n", idx, paramType)
		buf.WriteString("\t\tif err != nil {\n\t\t\treturn\n\t\t}\n")
		args[idx] = fmt.Sprintf("v%d", idx)
	}

	call := fmt.Sprintf("%s(%s)", provider.fnName, strings.Join(args, ", "))
	if provider.returnsError {
		fmt.Fprintf(buf, "\t\treturn %s\n", call)
	} else {
		fmt.Fprintf(buf, "\t\treturn %s, nil\n", call)
	}
	buf.WriteString("\t})\n")
}
