package account

// Reselect picks the account to show after the account list was refreshed.
// The previously selected account is kept when it is still listed (matched by
// id); otherwise the first account is chosen. It returns false for an empty list.
func Reselect(accounts []Account, previousID int64) (Account, bool) {
	if len(accounts) == 0 {
		return Account{}, false
	}
	if previousID != 0 {
		for _, acc := range accounts {
			if acc.ID == previousID {
				return acc, true
			}
		}
	}
	return accounts[0], true
}

// Find returns the listed account with the given id
func Find(accounts []Account, id int64) (Account, bool) {
	for _, acc := range accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return Account{}, false
}

// OwnedBy applies the ownership rule. When the backend embeds the owner list
// the customer must appear in it. When it does not, the account is accepted
// because it came from a customer-scoped listing; the second result reports
// whether the decision was based on an explicit owner list.
func (a *Account) OwnedBy(customerID int64) (owned bool, explicit bool) {
	if len(a.Customers) == 0 {
		return true, false
	}
	for _, id := range a.Customers {
		if id == customerID {
			return true, true
		}
	}
	return false, true
}
