// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/rafagsiqueira/landfall/internal/addrs"
)

// providerSource is the registry address of the provider the generated
// configuration targets.
const providerSource = "digitalocean/digitalocean"

// Render serializes the whole configuration into a map of relative file
// paths to file contents. Rendering is pure: the filesystem is not touched,
// so callers can diff, log, or discard the result before committing it.
func Render(cfg *Config) map[string][]byte {
	files := map[string][]byte{
		"versions.tf": renderVersions(),
		"main.tf":     renderRoot(cfg),
		"outputs.tf":  renderRootOutputs(cfg),
	}
	for _, m := range cfg.Modules {
		dir := string(m.Category)
		files[filepath.Join(dir, "main.tf")] = renderUnits(m)
		if len(m.Variables) > 0 {
			files[filepath.Join(dir, "variables.tf")] = renderVariables(m)
		}
		if len(m.Outputs) > 0 {
			files[filepath.Join(dir, "outputs.tf")] = renderOutputs(m)
		}
	}
	return files
}

// WriteDir renders the configuration and writes every file under dir in one
// pass. Directories are created as needed.
func WriteDir(cfg *Config, dir string) error {
	files := Render(cfg)
	for rel, src := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, src, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func renderVersions() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	tf := body.AppendNewBlock("terraform", nil)
	req := tf.Body().AppendNewBlock("required_providers", nil)
	req.Body().SetAttributeValue("digitalocean", cty.ObjectVal(map[string]cty.Value{
		"source": cty.StringVal(providerSource),
	}))

	body.AppendNewline()
	body.AppendNewBlock("provider", []string{"digitalocean"})
	return f.Bytes()
}

// renderRoot emits the top-level module calls in category order and wires
// the compute id map into the network module's input variable.
func renderRoot(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, m := range cfg.Modules {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("module", []string{string(m.Category)})
		block.Body().SetAttributeValue("source", cty.StringVal("./"+string(m.Category)))
		for _, v := range m.Variables {
			// The only cross-module edge is the compute id map feeding the
			// network module; every input variable is satisfied by a
			// same-named compute output.
			block.Body().SetAttributeRaw(v.Name, attrTokens("module", string(addrs.Compute), v.Name))
		}
	}
	return f.Bytes()
}

func renderRootOutputs(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	first := true
	for _, m := range cfg.Modules {
		for _, out := range m.Outputs {
			if !first {
				body.AppendNewline()
			}
			first = false
			block := body.AppendNewBlock("output", []string{out.Name})
			block.Body().SetAttributeRaw("value", attrTokens("module", string(m.Category), out.Name))
			if out.Sensitive {
				block.Body().SetAttributeValue("sensitive", cty.True)
			}
		}
	}
	return f.Bytes()
}

func renderUnits(m *Module) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, u := range m.Units {
		if i > 0 {
			body.AppendNewline()
		}
		body.AppendBlock(u.Block)
	}
	return f.Bytes()
}

func renderVariables(m *Module) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, v := range m.Variables {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("variable", []string{v.Name})
		block.Body().SetAttributeRaw("type", typeTokens(v.Type))
	}
	return f.Bytes()
}

func renderOutputs(m *Module) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, out := range m.Outputs {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("output", []string{out.Name})
		block.Body().SetAttributeRaw("value", out.Expr)
		if out.Sensitive {
			block.Body().SetAttributeValue("sensitive", cty.True)
		}
	}
	return f.Bytes()
}

// typeTokens renders a type constraint expression verbatim. Constraints are
// expressions, not strings, so they bypass the cty value path.
func typeTokens(src string) hclwrite.Tokens {
	return hclwrite.Tokens{
		{Type: hclsyntax.TokenIdent, Bytes: []byte(src)},
	}
}
