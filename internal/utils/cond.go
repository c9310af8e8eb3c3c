package querybuilder

import "strings"

type Condition struct {
	clause string
	args   []interface{}
}

// buildCondition joins conditions with AND
func buildCondition(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0, len(conditions))
	args := make([]interface{}, 0)

	for _, cond := range conditions {
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}

	return strings.Join(parts, " AND "), args
}
