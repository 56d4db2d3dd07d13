package helpers

// UserData carries the identity fields the registration form needs.
type UserData struct {
	Username string
	FullName string
	Email    string
	Password string
}

// TestUser is the canonical identity every spec logs in with. The fixture
// forge seeds it; suites running against a real instance must provision it.
var TestUser = UserData{
	Username: "testuser",
	FullName: "Test User",
	Email:    "test@example.com",
	Password: "TestPassword123!",
}
