// Package domain lets an object expose named use case shortcuts.
//
// A Table maps shortcut names to use case factories and is built once, at
// registration time. Binding the table to a host yields a Domain whose Call
// runs the named use case with the host as its collaborator:
//
//	var accountsTable = domain.NewTable().
//		MustDefine("open", NewOpenAccount).
//		MustDefine("close", NewCloseAccount, domain.WithWrappers(usecase.Timeout(5*time.Second)))
//
//	type Accounts struct {
//		*domain.Domain
//		Store Store
//	}
//
//	func NewAccounts(store Store) *Accounts {
//		a := &Accounts{Store: store}
//		a.Domain = accountsTable.Bind(a)
//		return a
//	}
//
//	out, err := accounts.Call(ctx, "open", "alice")
//
// To add behaviour around a shortcut, define a method on the host that calls
// Domain.Call between its own before and after code.
package domain
