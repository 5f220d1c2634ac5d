package flow

import "strings"

// NormalizeScope normaliza el campo grant_scope del form a un set estable.
//
// Un checkbox único llega como valor escalar y varios como lista; ambos deben
// producir exactamente el mismo payload. Un form sin scopes (o con valores en
// blanco) es un "grant nothing" legítimo: se coacciona a set vacío en vez de
// fallar. El resultado nunca es nil y preserva el orden de llegada.
func NormalizeScope(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
