package lsp

import (
	"encoding/json"
	"maps"

	"bslint/internal/diag"
	"bslint/internal/engine"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.log.WithError(err).Warn("invalid didChangeConfiguration params")
		return nil
	}
	if !s.applySettings(params.Settings) {
		return nil
	}
	s.reconfigure()
	s.republishAll()
	return nil
}

// applySettings stores client overrides; false when raw carries nothing usable.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.log.WithError(err).Warn("invalid bslint settings")
		return false
	}
	s.mu.Lock()
	s.settings = settings.BSLint.Diagnostics
	s.mu.Unlock()
	return true
}

// effectiveConfig накладывает настройки клиента на файл конфигурации:
// списки заменяются целиком, параметры правил сливаются по ключам.
func (s *Server) effectiveConfig() engine.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := engine.ConfigFrom(s.fileConfig)
	if s.settings.Language != "" {
		cfg.Language = diag.ParseLanguage(s.settings.Language)
	}
	if s.settings.Enabled != nil {
		cfg.Enabled = s.settings.Enabled
	}
	if s.settings.Disabled != nil {
		cfg.Disabled = s.settings.Disabled
	}
	if len(s.settings.Params) > 0 {
		params := make(map[string]map[string]any, len(cfg.Params)+len(s.settings.Params))
		for id, p := range cfg.Params {
			params[id] = maps.Clone(p)
		}
		for id, p := range s.settings.Params {
			if params[id] == nil {
				params[id] = make(map[string]any, len(p))
			}
			maps.Copy(params[id], p)
		}
		cfg.Params = params
	}
	return cfg
}

// reconfigure rebuilds the rule set. The engine logs problems itself and
// keeps defaults for the offending rules.
func (s *Server) reconfigure() {
	_ = s.engine.Configure(s.effectiveConfig())
}
