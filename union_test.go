package sqlbuilder

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGolden returns a goldie instance reading testdata/golden/*.golden.
//
// To regenerate golden files, run:
//
//	go test . -run TestUnionGolden -update
func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestQueryBuilder_BuildUnionQuery(t *testing.T) {
	t.Parallel()

	innerProjection := []string{"name", "age", "location"}

	employeeSubQuery, err := NewQueryBuilder().
		SetTables("employee").
		BuildUnionSubQuery("_id", innerProjection, nil, 2, "employee", "age=25", "", "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT name, age, location FROM employee WHERE (age=25)", employeeSubQuery)

	peopleSubQuery, err := NewQueryBuilder().
		SetTables("people").
		BuildUnionSubQuery("_id", innerProjection, nil, 2, "people", "location=LA", "", "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT name, age, location FROM people WHERE (location=LA)", peopleSubQuery)

	subQueries := []string{employeeSubQuery, peopleSubQuery}

	t.Run("distinct uses UNION", func(t *testing.T) {
		t.Parallel()
		sql, err := NewQueryBuilder().SetDistinct(true).BuildUnionQuery(subQueries, "", "")
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT name, age, location FROM employee WHERE (age=25) UNION SELECT name, age, location FROM people WHERE (location=LA)",
			sql)
	})

	t.Run("not distinct uses UNION ALL", func(t *testing.T) {
		t.Parallel()
		sql, err := NewQueryBuilder().SetDistinct(false).BuildUnionQuery(subQueries, "", "")
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT name, age, location FROM employee WHERE (age=25) UNION ALL SELECT name, age, location FROM people WHERE (location=LA)",
			sql)
	})

	t.Run("order and limit apply once", func(t *testing.T) {
		t.Parallel()
		sql, err := NewQueryBuilder().SetDistinct(true).BuildUnionQuery(subQueries, "name", "5")
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT name, age, location FROM employee WHERE (age=25) UNION SELECT name, age, location FROM people WHERE (location=LA) ORDER BY name LIMIT 5",
			sql)
	})

	t.Run("single subquery", func(t *testing.T) {
		t.Parallel()
		sql, err := NewQueryBuilder().BuildUnionQuery(subQueries[:1], "", "")
		require.NoError(t, err)
		assert.Equal(t, employeeSubQuery, sql)
	})

	t.Run("no subqueries", func(t *testing.T) {
		t.Parallel()
		sql, err := NewQueryBuilder().BuildUnionQuery(nil, "name", "")
		require.ErrorIs(t, err, ErrEmptyUnion)
		assert.Empty(t, sql)
	})

	t.Run("malformed limit", func(t *testing.T) {
		t.Parallel()
		_, err := NewQueryBuilder().BuildUnionQuery(subQueries, "", "all")
		require.ErrorIs(t, err, ErrInvalidClause)
	})
}

func TestQueryBuilder_BuildUnionSubQuery(t *testing.T) {
	t.Parallel()

	unionColumns := []string{"type", "name", "age", "location"}

	tests := []struct {
		name                  string
		tables                string
		columnsPresentInTable map[string]bool
		computedColumnsOffset int
		discriminatorValue    string
		selection             string
		groupBy               string
		having                string
		want                  string
	}{
		{
			name:                  "missing columns padded with NULL",
			tables:                "employee",
			columnsPresentInTable: map[string]bool{"name": true, "age": true},
			discriminatorValue:    "employee",
			want:                  "SELECT 'employee' AS type, name, age, NULL AS location FROM employee",
		},
		{
			name:               "nil present set keeps every column",
			tables:             "people",
			discriminatorValue: "people",
			selection:          "location = 'LA'",
			want:               "SELECT 'people' AS type, name, age, location FROM people WHERE (location = 'LA')",
		},
		{
			name:                  "computed columns before offset kept",
			tables:                "people",
			columnsPresentInTable: map[string]bool{"location": true},
			computedColumnsOffset: 3,
			discriminatorValue:    "people",
			want:                  "SELECT 'people' AS type, name, age, location FROM people",
		},
		{
			name:                  "column at offset is not computed",
			tables:                "people",
			columnsPresentInTable: map[string]bool{},
			computedColumnsOffset: 2,
			discriminatorValue:    "people",
			want:                  "SELECT 'people' AS type, name, NULL AS age, NULL AS location FROM people",
		},
		{
			name:                  "discriminator value escaped",
			tables:                "people",
			columnsPresentInTable: map[string]bool{},
			discriminatorValue:    "o'neil",
			want:                  "SELECT 'o''neil' AS type, NULL AS name, NULL AS age, NULL AS location FROM people",
		},
		{
			name:                  "group by and having carried",
			tables:                "employee",
			columnsPresentInTable: map[string]bool{"name": true, "age": true, "location": true},
			discriminatorValue:    "employee",
			groupBy:               "location",
			having:                "count(*) > 1",
			want:                  "SELECT 'employee' AS type, name, age, location FROM employee GROUP BY location HAVING count(*) > 1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sql, err := NewQueryBuilder().
				SetTables(tt.tables).
				BuildUnionSubQuery("type", unionColumns, tt.columnsPresentInTable, tt.computedColumnsOffset,
					tt.discriminatorValue, tt.selection, tt.groupBy, tt.having)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}

	t.Run("uses accumulated where and distinct", func(t *testing.T) {
		t.Parallel()
		sql, err := NewQueryBuilder().
			SetTables("employee").
			SetDistinct(true).
			AppendWhere("age > 20").
			BuildUnionSubQuery("type", unionColumns, map[string]bool{"name": true}, 0, "employee", "name <> ''", "", "")
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT DISTINCT 'employee' AS type, name, NULL AS age, NULL AS location FROM employee WHERE (age > 20) AND (name <> '')",
			sql)
	})

	t.Run("projection map applies to present columns", func(t *testing.T) {
		t.Parallel()
		projection := NewProjectionMap().
			Put("name", "full_name AS name").
			Put("age", "age")
		sql, err := NewQueryBuilder().
			SetTables("employee").
			SetProjectionMap(projection).
			BuildUnionSubQuery("type", unionColumns, map[string]bool{"name": true, "age": true}, 0, "employee", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "SELECT 'employee' AS type, full_name AS name, age, NULL AS location FROM employee", sql)
	})

	t.Run("missing tables", func(t *testing.T) {
		t.Parallel()
		_, err := NewQueryBuilder().BuildUnionSubQuery("type", unionColumns, nil, 0, "x", "", "", "")
		require.ErrorIs(t, err, ErrMissingTable)
	})
}

func TestUnionGolden(t *testing.T) {
	t.Parallel()

	unionColumns := []string{"type", "name", "age", "location"}

	employee, err := NewQueryBuilder().
		SetTables("employee").
		BuildUnionSubQuery("type", unionColumns, map[string]bool{"name": true, "age": true}, 0, "employee", "age=25", "", "")
	require.NoError(t, err)

	people, err := NewQueryBuilder().
		SetTables("people").
		BuildUnionSubQuery("type", unionColumns, map[string]bool{"name": true, "location": true}, 0, "people", "location='LA'", "", "")
	require.NoError(t, err)

	all, err := NewQueryBuilder().
		SetDistinct(false).
		BuildUnionQuery([]string{employee, people}, "name", "10")
	require.NoError(t, err)

	distinct, err := BuildUnionQueryString(true, []string{employee, people}, "", "")
	require.NoError(t, err)

	g := newGolden(t)
	g.Assert(t, "union_all_padded", []byte(all))
	g.Assert(t, "union_distinct_padded", []byte(distinct))
}
