package service

import (
	"encoding/json"
	"strings"

	"github.com/maisdocacau/storefront/internal/constants"
)

// IdentityResult 身份插件返回结果，只有下列三种变体
type IdentityResult interface {
	identityResult()
}

// WalletAuthSuccess 钱包签名成功
type WalletAuthSuccess struct {
	Address   string
	Message   string
	Signature string
	Version   int
}

// VerifySuccess 身份验证（年龄验证等）成功
type VerifySuccess struct {
	NullifierHash     string
	MerkleRoot        string
	Proof             string
	VerificationLevel string
}

// IdentityFailure 插件返回非 success 状态
type IdentityFailure struct {
	Status    string
	ErrorCode string
}

func (WalletAuthSuccess) identityResult() {}
func (VerifySuccess) identityResult()     {}
func (IdentityFailure) identityResult()   {}

type identityEnvelope struct {
	Status            string          `json:"status"`
	ErrorCode         string          `json:"error_code"`
	Address           string          `json:"address"`
	Message           string          `json:"message"`
	Signature         string          `json:"signature"`
	Version           json.RawMessage `json:"version"`
	NullifierHash     string          `json:"nullifier_hash"`
	MerkleRoot        string          `json:"merkle_root"`
	Proof             string          `json:"proof"`
	VerificationLevel string          `json:"verification_level"`
}

func decodeIdentityEnvelope(raw []byte) (*identityEnvelope, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrWalletPayloadInvalid
	}
	var envelope identityEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, ErrWalletPayloadInvalid
	}
	envelope.Status = strings.ToLower(strings.TrimSpace(envelope.Status))
	return &envelope, nil
}

func failureFromEnvelope(envelope *identityEnvelope) IdentityFailure {
	return IdentityFailure{
		Status:    envelope.Status,
		ErrorCode: strings.TrimSpace(envelope.ErrorCode),
	}
}

// ParseWalletAuthResult 解析钱包签名结果，任何非 success 状态均视为失败
func ParseWalletAuthResult(raw []byte) (IdentityResult, error) {
	envelope, err := decodeIdentityEnvelope(raw)
	if err != nil {
		return nil, err
	}
	if envelope.Status != constants.IdentityStatusSuccess {
		return failureFromEnvelope(envelope), nil
	}
	success := WalletAuthSuccess{
		Address:   strings.TrimSpace(envelope.Address),
		Message:   envelope.Message,
		Signature: strings.TrimSpace(envelope.Signature),
		Version:   parseIdentityVersion(envelope.Version),
	}
	if success.Address == "" || strings.TrimSpace(success.Message) == "" || success.Signature == "" {
		return nil, ErrWalletPayloadInvalid
	}
	return success, nil
}

// ParseVerifyResult 解析身份验证结果
func ParseVerifyResult(raw []byte) (IdentityResult, error) {
	envelope, err := decodeIdentityEnvelope(raw)
	if err != nil {
		return nil, err
	}
	if envelope.Status != constants.IdentityStatusSuccess {
		return failureFromEnvelope(envelope), nil
	}
	success := VerifySuccess{
		NullifierHash:     strings.TrimSpace(envelope.NullifierHash),
		MerkleRoot:        strings.TrimSpace(envelope.MerkleRoot),
		Proof:             strings.TrimSpace(envelope.Proof),
		VerificationLevel: strings.TrimSpace(envelope.VerificationLevel),
	}
	if success.NullifierHash == "" || success.Proof == "" {
		return nil, ErrWalletPayloadInvalid
	}
	return success, nil
}

// version 可能是数字或字符串
func parseIdentityVersion(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var number int
	if err := json.Unmarshal(raw, &number); err == nil {
		return number
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		var parsed int
		if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err == nil {
			return parsed
		}
	}
	return 0
}
