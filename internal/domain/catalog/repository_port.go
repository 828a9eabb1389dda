package catalog

import (
	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

// ========================================
// Ports
// ========================================

// Store はリモートのカタログストア（services / portfolioItems）です。
type Store = common.DocumentStore

// ObjectStore は画像アップロード先です。
type ObjectStore = common.ObjectStore
