package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skillpath/internal/roadmap"
)

// RoadmapRepo implements roadmap.Repository.
type RoadmapRepo struct {
	s *Store
}

var _ roadmap.Repository = (*RoadmapRepo)(nil)

func (r *RoadmapRepo) FindByID(ctx context.Context, id string) (*roadmap.Roadmap, error) {
	b := r.s.stmt()
	rows, err := queryB(ctx, r.s.db, b.Select("id", "user_id", "target_role").
		From(b.Table(RoadmapsTable.Name)).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return nil, fail("find roadmap", err)
	}
	var rm *roadmap.Roadmap
	if rows.Next() {
		rm = &roadmap.Roadmap{}
		err = rows.Scan(&rm.ID, &rm.UserID, &rm.TargetRole)
	}
	rows.Close()
	if err == nil {
		err = rows.Err()
	}
	if err != nil || rm == nil {
		return nil, fail("find roadmap", err)
	}

	rows, err = queryB(ctx, r.s.db, b.Select("id", "position", "title", "type", "topic", "difficulty").
		From(b.Table(RoadmapItemsTable.Name)).
		Where(entsql.EQ("roadmap_id", id)).
		OrderBy("position"))
	if err != nil {
		return nil, fail("find roadmap items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it roadmap.Item
		var typ string
		if err := rows.Scan(&it.ID, &it.Position, &it.Title, &typ, &it.Topic, &it.Difficulty); err != nil {
			return nil, fail("find roadmap items", err)
		}
		it.Type = roadmap.ItemType(typ)
		rm.Items = append(rm.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("find roadmap items", err)
	}
	return rm, nil
}

// Save upserts the roadmap and replaces its items.
func (r *RoadmapRepo) Save(ctx context.Context, rm *roadmap.Roadmap) error {
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		b := r.s.stmt()
		upsert := b.Insert(RoadmapsTable.Name).
			Columns("id", "user_id", "target_role").
			Values(rm.ID, rm.UserID, rm.TargetRole).
			OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
		if _, err := execB(ctx, tx, upsert); err != nil {
			return fmt.Errorf("upsert roadmap: %w", err)
		}

		if _, err := execB(ctx, tx, b.Delete(RoadmapItemsTable.Name).Where(entsql.EQ("roadmap_id", rm.ID))); err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		if len(rm.Items) == 0 {
			return nil
		}

		ins := b.Insert(RoadmapItemsTable.Name).
			Columns("roadmap_id", "id", "position", "title", "type", "topic", "difficulty")
		for i, it := range rm.Items {
			ins.Values(rm.ID, it.ID, i, it.Title, string(it.Type), it.Topic, it.Difficulty)
		}
		if _, err := execB(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
	return fail("save roadmap", err)
}
