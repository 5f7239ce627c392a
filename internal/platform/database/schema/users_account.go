// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	CreatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Email:     "email",
	Password:  "passwordhash",
	CreatedAt: "createdat",
}

// Columns returns the columns in scan order.
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.Password, t.CreatedAt}
}
