package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/ctydecode"
)

// ValidateRegistry checks every kind for a usable option struct, a
// constructor and distinct slot roles.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, k := range r.Kinds() {
		if k.New == nil {
			errs = append(errs, fmt.Sprintf("kind '%s': no constructor", k.Name))
		}
		if k.NewOptions == nil {
			errs = append(errs, fmt.Sprintf("kind '%s': no option factory", k.Name))
			continue
		}
		fields, err := ctydecode.OptionFields(k.NewOptions())
		if err != nil {
			errs = append(errs, fmt.Sprintf("kind '%s': %v", k.Name, err))
			continue
		}

		roles := make(map[string]struct{})
		for _, role := range k.AllSlots() {
			if _, dup := roles[role]; dup {
				errs = append(errs, fmt.Sprintf("kind '%s': slot '%s' declared twice", k.Name, role))
			}
			roles[role] = struct{}{}
		}
		logger.Debug("Builder kind validated.", "kind", k.Name, "options", len(fields), "slots", len(roles))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
