package common

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default" when no account is provided. Accounts let a
// single server manage tokens for multiple Google accounts.
func GetAccountFromArgs(args map[string]interface{}) string {
	account, _ := args["account"].(string)
	if account == "" {
		return "default"
	}
	return account
}
