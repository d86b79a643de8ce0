package registry

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// Registry maps collector roles to their specs and validates param
// bags against the per-role schema before dispatch.
type Registry struct {
	specs map[string]CollectorSpec
}

// New returns a registry preloaded with the built-in collector roles.
func New() *Registry {
	r := &Registry{specs: map[string]CollectorSpec{}}
	for _, spec := range builtinSpecs {
		r.specs[spec.Role] = spec
	}
	return r
}

// Roles returns the registered role names in stable order.
func (r *Registry) Roles() []string {
	roles := make([]string, 0, len(r.specs))
	for role := range r.specs {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Lookup returns the spec for a role.
func (r *Registry) Lookup(role string) (CollectorSpec, bool) {
	spec, ok := r.specs[role]
	return spec, ok
}

// ValidateParams checks a param bag against the role's schema. An
// unknown role or a bag that violates the schema returns an error with
// every violation listed.
func (r *Registry) ValidateParams(role string, params map[string]interface{}) error {
	spec, ok := r.specs[role]
	if !ok {
		return fmt.Errorf("unknown collector role: %s", role)
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	schemaLoader := gojsonschema.NewGoLoader(spec.ParamSchema)
	documentLoader := gojsonschema.NewGoLoader(params)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("param validation failed for %s: %v", role, errs)
	}

	return nil
}

// FilterParams returns only the keys the role's schema declares, so an
// oversized shared param bag can be narrowed to one collector's view.
func (r *Registry) FilterParams(role string, params map[string]interface{}) map[string]interface{} {
	spec, ok := r.specs[role]
	if !ok {
		return map[string]interface{}{}
	}
	props, _ := spec.ParamSchema["properties"].(map[string]interface{})
	filtered := map[string]interface{}{}
	for key := range props {
		if v, ok := params[key]; ok {
			filtered[key] = v
		}
	}
	return filtered
}
