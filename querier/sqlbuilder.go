package querier

import (
	"fmt"
	"strings"

	"github.com/vendq/vendq/querier/ast"
)

// likeEscaper escapes the escape character itself plus both LIKE wildcards
// in the needle, before any wildcard is added around it.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildWhere emits the chain as a WHERE fragment with one fresh `?`
// placeholder per bound value and the values in emission order. Literals
// never appear in the fragment text; null checks bind nothing. An empty
// chain yields an empty fragment.
func BuildWhere(chain ast.Chain) (string, []any, error) {
	if len(chain) == 0 {
		return "", nil, nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(chain))

	for i, link := range chain {
		if i > 0 {
			if link.Connector.String() == "" {
				return "", nil, fmt.Errorf("condition %d has no connector", i)
			}
			sb.WriteString(" ")
			sb.WriteString(link.Connector.String())
			sb.WriteString(" ")
		}

		switch c := link.Cond.(type) {
		case ast.Compare:
			sb.WriteString(c.Column.Internal)
			sb.WriteString(" ")
			sb.WriteString(string(c.Op))
			sb.WriteString(" ?")
			args = append(args, c.Value)

		case ast.NullCheck:
			sb.WriteString(c.Column.Internal)
			if c.Negated {
				sb.WriteString(" IS NOT NULL")
			} else {
				sb.WriteString(" IS NULL")
			}

		case ast.Match:
			sb.WriteString(c.Column.Internal)
			sb.WriteString(` LIKE ? ESCAPE '\\'`)
			args = append(args, LikePattern(c))

		default:
			return "", nil, fmt.Errorf("unknown condition type %T", link.Cond)
		}
	}

	return sb.String(), args, nil
}

// LikePattern renders a match condition as its LIKE pattern: the escaped
// needle wrapped in wildcards according to the match kind.
func LikePattern(m ast.Match) string {
	escaped := likeEscaper.Replace(m.Needle)
	switch m.Kind {
	case ast.MatchStartsWith:
		return escaped + "%"
	case ast.MatchEndsWith:
		return "%" + escaped
	default:
		return "%" + escaped + "%"
	}
}
