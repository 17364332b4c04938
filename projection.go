package sqlbuilder

import "strings"

// CountColumn is the projection map key left out when the whole map is projected.
const CountColumn = "_count"

// ProjectionMap maps caller-facing column names to SQL column expressions.
// It remembers insertion order, which is the order used when every entry is
// projected.
type ProjectionMap struct {
	aliases []string
	columns map[string]string
}

// NewProjectionMap creates an empty projection map.
func NewProjectionMap() *ProjectionMap {
	return &ProjectionMap{
		aliases: make([]string, 0),
		columns: make(map[string]string),
	}
}

// Put maps alias to column. Re-putting an alias replaces its column and
// keeps its original position.
//
// Returns the map for method chaining.
func (m *ProjectionMap) Put(alias, column string) *ProjectionMap {
	if _, ok := m.columns[alias]; !ok {
		m.aliases = append(m.aliases, alias)
	}
	m.columns[alias] = column
	return m
}

// Get returns the column expression mapped to alias.
func (m *ProjectionMap) Get(alias string) (string, bool) {
	column, ok := m.columns[alias]
	return column, ok
}

// Len returns the number of entries.
func (m *ProjectionMap) Len() int {
	return len(m.aliases)
}

// Aliases returns the mapped aliases in insertion order.
func (m *ProjectionMap) Aliases() []string {
	aliases := make([]string, len(m.aliases))
	copy(aliases, m.aliases)
	return aliases
}

// ResolveProjection turns the requested projection into SQL column expressions.
//
// With a projection map, every requested name is translated through it. A
// name missing from the map is an ErrUnknownColumn unless strict is false
// and the name already carries an alias (" AS " or " as "), in which case it
// passes through. Without a projection map the request is returned as is.
//
// An empty request projects every entry of the map in insertion order,
// skipping CountColumn. An empty request without a map is ErrMissingProjection.
func ResolveProjection(projectionIn []string, projectionMap *ProjectionMap, strict bool) ([]string, error) {
	if len(projectionIn) > 0 {
		if projectionMap == nil {
			return projectionIn, nil
		}

		projection := make([]string, len(projectionIn))
		for i, userColumn := range projectionIn {
			if column, ok := projectionMap.Get(userColumn); ok {
				projection[i] = column
				continue
			}
			if !strict && hasColumnAlias(userColumn) {
				projection[i] = userColumn
				continue
			}
			return nil, NewErrorContext("resolve projection").WithColumn(userColumn).Error(ErrUnknownColumn)
		}
		return projection, nil
	}

	if projectionMap == nil {
		return nil, NewErrorContext("resolve projection").Error(ErrMissingProjection)
	}

	projection := make([]string, 0, projectionMap.Len())
	for _, alias := range projectionMap.aliases {
		if alias == CountColumn {
			continue
		}
		projection = append(projection, projectionMap.columns[alias])
	}
	return projection, nil
}

func hasColumnAlias(column string) bool {
	return strings.Contains(column, " AS ") || strings.Contains(column, " as ")
}
