// Copyright (c) The Landfall Authors
// SPDX-License-Identifier: MPL-2.0

package configgen

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// attrTokens renders a traversal like digitalocean_droplet.web_1.id.
func attrTokens(root string, attrs ...string) hclwrite.Tokens {
	traversal := hcl.Traversal{hcl.TraverseRoot{Name: root}}
	for _, a := range attrs {
		traversal = append(traversal, hcl.TraverseAttr{Name: a})
	}
	return hclwrite.TokensForTraversal(traversal)
}

// indexTokens renders a string-indexed traversal like
// var.droplet_ids_by_name["web_1"].
func indexTokens(key string, root string, attrs ...string) hclwrite.Tokens {
	traversal := hcl.Traversal{hcl.TraverseRoot{Name: root}}
	for _, a := range attrs {
		traversal = append(traversal, hcl.TraverseAttr{Name: a})
	}
	traversal = append(traversal, hcl.TraverseIndex{Key: cty.StringVal(key)})
	return hclwrite.TokensForTraversal(traversal)
}

// identListTokens renders a tuple of bare identifiers, as used by
// lifecycle ignore_changes.
func identListTokens(names ...string) hclwrite.Tokens {
	elems := make([]hclwrite.Tokens, len(names))
	for i, n := range names {
		elems[i] = hclwrite.TokensForIdentifier(n)
	}
	return hclwrite.TokensForTuple(elems)
}

// objectTokens renders an object expression from name to arbitrary value
// tokens, with keys in lexical order for stable output.
func objectTokens(entries map[string]hclwrite.Tokens) hclwrite.Tokens {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]hclwrite.ObjectAttrTokens, 0, len(entries))
	for _, k := range keys {
		attrs = append(attrs, hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForIdentifier(k),
			Value: entries[k],
		})
	}
	return hclwrite.TokensForObject(attrs)
}

// stringListValue converts a string slice into a cty list value suitable
// for SetAttributeValue. Callers check for emptiness first; list attributes
// are only emitted when non-empty.
func stringListValue(items []string) cty.Value {
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

// mapOrEmpty builds a cty map of strings, handling the empty case that
// cty.MapVal rejects.
func mapOrEmpty(m map[string]string) cty.Value {
	if len(m) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	vals := make(map[string]cty.Value, len(m))
	for k, v := range m {
		vals[k] = cty.StringVal(v)
	}
	return cty.MapVal(vals)
}
