package commands

import (
	"fmt"

	"kisansaarthi/services/api"
	"kisansaarthi/services/otp"
	"kisansaarthi/services/session"
	"kisansaarthi/utils"

	"go.uber.org/zap"
)

func (a *app) apiClient() (*api.Client, error) {
	return api.NewClient(api.Options{
		BaseURL: a.cfg.APIBaseURL,
		Timeout: a.cfg.RequestTimeout(),
		Logger:  a.logger,
	})
}

// openStore returns the session store named by SESSION_STORE and a func that
// releases it.
func (a *app) openStore() (session.Store, func(), error) {
	switch a.cfg.SessionStore {
	case "redis":
		client, err := utils.NewRedisClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisSessionDB)
		if err != nil {
			return nil, nil, err
		}
		release := func() {
			if err := client.Close(); err != nil {
				a.logger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}
		return session.NewKVStore(utils.NewRedisKV(client)), release, nil
	case "memory":
		if a.memory == nil {
			a.memory = session.NewKVStore(utils.NewMemoryKV())
		}
		return a.memory, func() {}, nil
	default:
		store, err := session.NewFileStore(a.cfg.SessionFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open session file: %w", err)
		}
		return store, func() {}, nil
	}
}

func (a *app) materializer() (*session.Materializer, func(), error) {
	store, release, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	return session.NewMaterializer(store, a.logger), release, nil
}

func (a *app) otpClient(ch otp.Channel) *otp.Client {
	return otp.NewClient(ch, nil, a.cfg.OTPCooldownSeconds, a.logger)
}

func (a *app) prompter() *prompter {
	return newPrompter(a.in, a.out)
}
