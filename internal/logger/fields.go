package logger

import "go.uber.org/zap"

// Field keys shared by every component so log queries and sentry tags line up

func ActionID(id string) zap.Field {
	return zap.String("actionID", id)
}

func MintRequestID(id string) zap.Field {
	return zap.String("mintRequestID", id)
}

func TxHash(hash string) zap.Field {
	return zap.String("txHash", hash)
}

func SignerID(id string) zap.Field {
	return zap.String("signerID", id)
}

func PolicyVersion(version string) zap.Field {
	return zap.String("policyVersion", version)
}
