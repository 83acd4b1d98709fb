package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildListQueryNoFilters(t *testing.T) {
	repo := &NoteRepository{}

	sqlStr, args, err := repo.buildListQuery(NoteFilter{}).ToSql()
	require.NoError(t, err)
	require.Empty(t, args)
	require.Contains(t, sqlStr, "JOIN users u ON u.id = n.uploaded_by")
	require.Contains(t, sqlStr, "ORDER BY n.created_at DESC")
	require.NotContains(t, sqlStr, "WHERE")
}

func TestBuildListQueryConjunctiveFilters(t *testing.T) {
	repo := &NoteRepository{}

	sqlStr, args, err := repo.buildListQuery(NoteFilter{
		CollegeID:  3,
		Department: "CSE",
		Semester:   5,
		Type:       "pastpaper",
		Year:       2024,
		ExamType:   "endsem",
	}).ToSql()
	require.NoError(t, err)
	require.Contains(t, sqlStr, "n.college_id = $1")
	require.Contains(t, sqlStr, "n.department = $2")
	require.Contains(t, sqlStr, "n.semester = $3")
	require.Contains(t, sqlStr, "n.type = $4")
	require.Contains(t, sqlStr, "n.year = $5")
	require.Contains(t, sqlStr, "n.exam_type = $6")
	require.Equal(t, []interface{}{int64(3), "CSE", 5, "pastpaper", 2024, "endsem"}, args)
}

func TestBuildListQuerySearchBlock(t *testing.T) {
	repo := &NoteRepository{}

	sqlStr, args, err := repo.buildListQuery(NoteFilter{CollegeID: 1, Search: "deadlock"}).ToSql()
	require.NoError(t, err)
	require.Contains(t, sqlStr, "n.title ILIKE $2 OR n.subject ILIKE $3 OR n.description ILIKE $4")
	require.Equal(t, []interface{}{int64(1), "%deadlock%", "%deadlock%", "%deadlock%"}, args)
}
