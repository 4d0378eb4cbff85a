package schema

// Atomic permission strings. Routes declare what they require; roles grant
// sets of them to their users.
const (
	ViewUsers       = "view_users"
	ManageUsers     = "manage_users"
	ViewRoles       = "view_roles"
	ManageRoles     = "manage_roles"
	ViewCustomers   = "view_customers"
	ManageCustomers = "manage_customers"
	ManageClients   = "manage_clients"
)
