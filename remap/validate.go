package remap

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"universal-mapper/access"
	"universal-mapper/diagnostic"
)

var ErrUnknownType = errors.New("unknown type")

// Validate checks the file structurally and, when resolver is not nil, checks
// type names and field names against the resolved types.
func (f *File) Validate(resolver TypeResolver) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("remap_is_nil", "remap file is nil", "", "")
		return res
	}

	if f.Version != currentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "")
	}

	seenPairs := map[string]struct{}{}

	for i := range f.Mappings {
		tm := &f.Mappings[i]
		tpStr := tm.pairString()

		if tm.Source == "" || tm.Target == "" {
			res.AddError("empty_type", "source and target types are required", tpStr, "")
			continue
		}

		if _, ok := seenPairs[tpStr]; ok {
			res.AddError("duplicate_mapping", fmt.Sprintf("duplicate type pair %s", tpStr), tpStr, "")
			continue
		}
		seenPairs[tpStr] = struct{}{}

		if len(tm.OneToOne) == 0 && tm.Ignore.IsEmpty() {
			res.AddInfo("empty_mapping", "mapping has no rules, default name matching applies", tpStr, "")
		}

		validateRules(res, tpStr, tm)

		if resolver != nil {
			validateTypes(res, tpStr, tm, resolver)
		}
	}

	return res
}

func validateRules(res *diagnostic.Diagnostics, tpStr string, tm *TypeMapping) {
	targets := map[string]string{}

	for _, src := range slices.Sorted(maps.Keys(tm.OneToOne)) {
		dst := tm.OneToOne[src]

		if !access.IsValidIdent(src) {
			res.AddError("invalid_source_field", fmt.Sprintf("invalid source field %q", src), tpStr, src)
		}

		if !access.IsValidIdent(dst) {
			res.AddError("invalid_target_field", fmt.Sprintf("invalid target field %q", dst), tpStr, src)
			continue
		}

		if prev, ok := targets[dst]; ok {
			res.AddError("duplicate_target",
				fmt.Sprintf("target field %q is mapped from both %q and %q", dst, prev, src), tpStr, src)
			continue
		}
		targets[dst] = src
	}

	for _, ig := range tm.Ignore {
		if !access.IsValidIdent(ig) {
			res.AddError("invalid_ignore_field", fmt.Sprintf("invalid ignored field %q", ig), tpStr, ig)
			continue
		}

		if _, ok := tm.OneToOne[ig]; ok {
			res.AddError("mapped_and_ignored", fmt.Sprintf("field %q is both mapped and ignored", ig), tpStr, ig)
		}
	}
}

func validateTypes(res *diagnostic.Diagnostics, tpStr string, tm *TypeMapping, resolver TypeResolver) {
	srcT, ok := resolver.ResolveType(tm.Source)
	if !ok {
		res.AddError("source_type_not_found", fmt.Sprintf("source type %q not found", tm.Source), tpStr, tm.Source)
	}

	dstT, ok := resolver.ResolveType(tm.Target)
	if !ok {
		res.AddError("target_type_not_found", fmt.Sprintf("target type %q not found", tm.Target), tpStr, tm.Target)
	}

	for _, src := range slices.Sorted(maps.Keys(tm.OneToOne)) {
		if srcT != nil && !hasField(srcT, src) {
			res.AddError("unknown_source_field", fmt.Sprintf("%s has no field %q", srcT, src), tpStr, src)
		}

		if dst := tm.OneToOne[src]; dstT != nil && !hasField(dstT, dst) {
			res.AddError("unknown_target_field", fmt.Sprintf("%s has no field %q", dstT, dst), tpStr, src)
		}
	}

	for _, ig := range tm.Ignore {
		if srcT != nil && !hasField(srcT, ig) {
			res.AddWarning("unknown_ignore_field", fmt.Sprintf("%s has no field %q", srcT, ig), tpStr, ig)
		}
	}
}

func hasField(t reflect.Type, name string) bool {
	t = base(t)
	if t.Kind() != reflect.Struct {
		return false
	}

	sf, ok := t.FieldByName(name)
	return ok && sf.IsExported()
}

// Apply validates the file and registers its rules into cfg.
func (f *File) Apply(cfg *Config, resolver TypeResolver) error {
	if resolver == nil {
		return fmt.Errorf("%w: no type resolver", ErrUnknownType)
	}

	if diags := f.Validate(resolver); diags.HasErrors() {
		return diags.Error()
	}

	for i := range f.Mappings {
		tm := &f.Mappings[i]

		srcT, ok := resolver.ResolveType(tm.Source)
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownType, tm.Source)
		}

		dstT, ok := resolver.ResolveType(tm.Target)
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownType, tm.Target)
		}

		rules := cfg.Configure(srcT, dstT)
		for src, dst := range tm.OneToOne {
			rules.Map(src, dst)
		}

		for _, ig := range tm.Ignore {
			rules.Drop(ig)
		}
	}

	return nil
}
