package querybuilder

import (
	"reflect"
	"testing"
)

func TestBuildSelect(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Select("id", "object_key").
		From("submissions").
		Where("id = ?", "abc").
		And("access_code = ?", "HIRE2024").
		Build()

	want := "SELECT id, object_key FROM public.submissions WHERE id = ? AND access_code = ?"
	if query != want {
		t.Fatalf("query = %q\nwant    %q", query, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"abc", "HIRE2024"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildSelectWithoutSchema(t *testing.T) {
	query, args := NewQueryBuilder("").Select("id").From("submissions").Build()
	if query != "SELECT id FROM submissions" || len(args) != 0 {
		t.Fatalf("got %q %v", query, args)
	}
}

func TestBuildInsertOnConflict(t *testing.T) {
	cases := []struct {
		name      string
		doNothing bool
		want      string
	}{
		{"do nothing", true, "INSERT INTO s.t (a, b) VALUES (?, ?), (?, ?) ON CONFLICT (a) DO NOTHING"},
		{"no action", false, "INSERT INTO s.t (a, b) VALUES (?, ?), (?, ?)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qb := NewQueryBuilder("s").Insert("a", "b").Into("t").Values(1, 2).Values(3, 4).OnConflict("a")
			if tc.doNothing {
				qb = qb.DoNothing()
			}
			query, args := qb.Build()
			if query != tc.want {
				t.Fatalf("query = %q\nwant    %q", query, tc.want)
			}
			if !reflect.DeepEqual(args, []interface{}{1, 2, 3, 4}) {
				t.Fatalf("args = %v", args)
			}
		})
	}
}

func TestBuildInsertRejectsMismatchedRow(t *testing.T) {
	query, args := NewQueryBuilder("").Insert("a", "b").Into("t").Values(1).Build()
	if query != "" || args != nil {
		t.Fatalf("got %q %v, want empty", query, args)
	}
}
