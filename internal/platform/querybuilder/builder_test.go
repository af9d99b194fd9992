package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectBuilder_ToSQL(t *testing.T) {
	sql, args, err := Select("id", "name").
		From("clubs").
		Where(Eq("place_id", "place-1"), IsNull("deleted_at")).
		OrderBy("name ASC").
		Limit(20).
		ToSQL()

	require.NoError(t, err)
	require.Equal(t, "SELECT id, name FROM clubs WHERE place_id = $1 AND deleted_at IS NULL ORDER BY name ASC LIMIT 20", sql)
	require.Equal(t, []any{"place-1"}, args)
}

func TestSelectBuilder_In(t *testing.T) {
	sql, args, err := Select("id").
		From("players").
		Where(In("id", "p1", "p2", "p3"), IsNull("deleted_at")).
		ToSQL()

	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM players WHERE id IN ($1, $2, $3) AND deleted_at IS NULL", sql)
	require.Equal(t, []any{"p1", "p2", "p3"}, args)
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	sql, args, err := Select("id").From("players").Where(In("id")).ToSQL()

	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM players WHERE 1=0", sql)
	require.Empty(t, args)
}

func TestSelectBuilder_Expr(t *testing.T) {
	sql, args, err := Select("id").
		From("competitions").
		Where(Expr("(from_date IS NULL OR from_date <= ?)", "2025-06-15")).
		ToSQL()

	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM competitions WHERE (from_date IS NULL OR from_date <= $1)", sql)
	require.Equal(t, []any{"2025-06-15"}, args)
}

func TestSelectBuilder_RequiresTableAndColumns(t *testing.T) {
	_, _, err := Select().From("clubs").ToSQL()
	require.Error(t, err)

	_, _, err = Select("id").ToSQL()
	require.Error(t, err)
}

func TestInsertBuilder_ToSQL(t *testing.T) {
	sql, args, err := Insert("registrations").
		Columns("id", "player_id", "captain").
		Values("reg-1", "p1", false).
		Values("reg-2", "p2", true).
		ToSQL()

	require.NoError(t, err)
	require.Equal(t, "INSERT INTO registrations (id, player_id, captain) VALUES ($1, $2, $3), ($4, $5, $6)", sql)
	require.Equal(t, []any{"reg-1", "p1", false, "reg-2", "p2", true}, args)
}

func TestInsertBuilder_Suffix(t *testing.T) {
	sql, _, err := Insert("clubs").
		Columns("id", "name").
		Values("c1", "Northside").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()

	require.NoError(t, err)
	require.Equal(t, "INSERT INTO clubs (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING", sql)
}

func TestInsertBuilder_RowArityMismatch(t *testing.T) {
	_, _, err := Insert("clubs").
		Columns("id", "name").
		Values("c1").
		ToSQL()

	require.Error(t, err)
}

func TestUpdateBuilder_ToSQL(t *testing.T) {
	sql, args, err := Update("registrations").
		Set("captain", true).
		SetRaw("updated_at", "now()").
		Where(Eq("id", "reg-1"), IsNull("deleted_at")).
		ToSQL()

	require.NoError(t, err)
	require.Equal(t, "UPDATE registrations SET captain = $1, updated_at = now() WHERE id = $2 AND deleted_at IS NULL", sql)
	require.Equal(t, []any{true, "reg-1"}, args)
}

func TestUpdateBuilder_RequiresAssignments(t *testing.T) {
	_, _, err := Update("registrations").Where(Eq("id", "reg-1")).ToSQL()
	require.Error(t, err)
}
