package service

import (
	"github.com/MKhiriev/go-quote-guard/internal/config"
	"github.com/MKhiriev/go-quote-guard/internal/crypto"
	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/store"
)

// ClientServices groups the services of the local security layer.
type ClientServices struct {
	SecureStorage SecureStorageService
	Security      SecurityService
}

func NewClientServices(storages *store.ClientStorages, keychain crypto.KeyChainService, cfg config.ClientSecurity, log *logger.Logger, opts ...SecurityOption) *ClientServices {
	secureStorage := NewSecureStorageService(storages.KeyValueStore, keychain, cfg.BackupLimit, log)

	return &ClientServices{
		SecureStorage: secureStorage,
		Security:      NewSecurityService(secureStorage, keychain, cfg, log, opts...),
	}
}
