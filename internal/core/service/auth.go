package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AddressAuthorizer struct {
	allowlist []string
}

func NewAuthorizer() (*AddressAuthorizer, error) {
	var list []string

	err := viper.UnmarshalKey("xmpp.admins", &list)
	if err != nil {
		return nil, errors.New("failed to load admin addresses")
	}

	return &AddressAuthorizer{allowlist: list}, nil
}

func (a *AddressAuthorizer) IsAuthorized(address string) bool {
	for _, admin := range a.allowlist {
		if admin == address {
			return true
		}
	}

	log.Debug().Str("address", address).Msg("address not on admin allowlist")

	return false
}
