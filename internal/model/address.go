package model

import "strings"

// Address is a postal address value. Two addresses are equal when every field
// is equal, so the struct is safe to compare with ==.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// NewAddress trims every field and requires all of them.
func NewAddress(street, city, state, zipCode string) (Address, error) {
	if isBlank(street) {
		return Address{}, InvalidArgument("Street is required.")
	}
	if isBlank(city) {
		return Address{}, InvalidArgument("City is required.")
	}
	if isBlank(state) {
		return Address{}, InvalidArgument("State is required.")
	}
	if isBlank(zipCode) {
		return Address{}, InvalidArgument("ZipCode is required.")
	}

	return Address{
		Street:  strings.TrimSpace(street),
		City:    strings.TrimSpace(city),
		State:   strings.TrimSpace(state),
		ZipCode: strings.TrimSpace(zipCode),
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ContactInfo is a person's contact details. Like Address it compares by value.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewContactInfo trims every field and requires all of them.
func NewContactInfo(name, email, phone string) (ContactInfo, error) {
	if isBlank(name) {
		return ContactInfo{}, InvalidArgument("Name is required.")
	}
	if isBlank(email) {
		return ContactInfo{}, InvalidArgument("Email is required.")
	}
	if isBlank(phone) {
		return ContactInfo{}, InvalidArgument("Phone is required.")
	}

	return ContactInfo{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}, nil
}
