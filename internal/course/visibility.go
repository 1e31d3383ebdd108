package course

import (
	"fmt"
	"strings"

	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope restricts db to the courses caller may list. The checks run in a
// fixed order:
//  1. anonymous callers see every course that is not soft-deleted
//  2. administrators see every course, soft-deleted ones included
//  3. anyone else sees their own courses that are not soft-deleted
func Scope(db *gorm.DB, caller *authsdk.UserContext) *gorm.DB {
	switch {
	case !caller.Authenticated():
		return db.Where("deleted = ?", false)
	case caller.Role == userModel.RoleAdmin:
		return db
	default:
		return db.Where("user_id = ? AND deleted = ?", caller.UserID, false)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Filter applies the caller supplied predicates on top of a scoped query
func Filter(db *gorm.DB, q ListQuery) *gorm.DB {
	if q.Title != "" {
		db = db.Where(`title LIKE ? ESCAPE '\'`, contains(q.Title))
	}
	if q.Description != "" {
		db = db.Where(`description LIKE ? ESCAPE '\'`, contains(q.Description))
	}
	if q.Status != "" {
		db = db.Where(`status LIKE ? ESCAPE '\'`, contains(strings.ToUpper(q.Status)))
	}
	if q.OldPrice != "" {
		db = db.Where("CAST(old_price AS TEXT) LIKE ?", "%"+q.OldPrice+"%")
	}
	if q.NewPrice != "" {
		db = db.Where("CAST(new_price AS TEXT) LIKE ?", "%"+q.NewPrice+"%")
	}
	if q.MinPrice != nil {
		db = db.Where("new_price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("new_price <= ?", *q.MaxPrice)
	}
	if q.Type != nil {
		db = db.Where(tagContains{column: "type", tag: *q.Type})
	}
	if q.User != nil {
		db = db.Where("user_id = ?", *q.User)
	}
	return db
}

// tagContains matches rows whose JSON tag array holds tag
type tagContains struct {
	column string
	tag    int
}

func (t tagContains) Build(builder clause.Builder) {
	if stmt, ok := builder.(*gorm.Statement); ok && stmt.Dialector.Name() == "postgres" {
		builder.WriteQuoted(t.column)
		builder.WriteString(" @> ")
		builder.AddVar(builder, fmt.Sprintf("[%d]", t.tag))
		builder.WriteString("::jsonb")
		return
	}
	datatypes.JSONArrayQuery(t.column).Contains(t.tag).Build(builder)
}
