package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// The ledger shapes migrate once per content family via Table(...), so index
// names must derive from the statement table. Postgres index names live in
// the schema-wide relation namespace; a name pinned in the tag would collide
// on the second family's migration.
func TestLikeRecordIndexNameFollowsTable(t *testing.T) {
	seen := map[string]string{}

	for _, kind := range Kinds(5, 5, 1, 1) {
		s, err := schema.ParseWithSpecialTableName(&LikeRecord{}, &sync.Map{}, schema.NamingStrategy{}, kind.LikeTable)
		require.NoError(t, err)

		indexes := s.ParseIndexes()
		require.Len(t, indexes, 1, "one composite index per like table")

		for name, idx := range indexes {
			assert.Equal(t, "UNIQUE", idx.Class)
			require.Len(t, idx.Fields, 2, "(user_id, target_id) stays composite")
			assert.Equal(t, "UserID", idx.Fields[0].Name)
			assert.Equal(t, "TargetID", idx.Fields[1].Name)
			assert.Contains(t, name, kind.LikeTable)

			if prev, dup := seen[name]; dup {
				t.Fatalf("index name %q shared by %s and %s", name, prev, kind.LikeTable)
			}
			seen[name] = kind.LikeTable
		}
	}
}
