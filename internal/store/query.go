package store

import "strings"

// conditionalInsert turns insert into a no-op-on-duplicate statement for
// the connected driver. SQLite and PostgreSQL take an appended
// ON CONFLICT ... DO NOTHING clause; MySQL has no ON CONFLICT grammar, so
// the statement becomes INSERT IGNORE instead.
func conditionalInsert(driver, insert, conflictColumn string) string {
	if driver == "mysql" {
		return strings.Replace(insert, "INSERT", "INSERT IGNORE", 1)
	}
	return insert + " ON CONFLICT (" + conflictColumn + ") DO NOTHING"
}
