package settings

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/avatar"
)

var allPermissions = []string{
	"dashboard:view",
	"solicitacoes:view", "solicitacoes:create", "solicitacoes:edit", "solicitacoes:manage_status",
	"clientes:view", "clientes:create", "clientes:edit",
	"entregadores:view", "entregadores:create", "entregadores:edit",
	"entregas:view",
	"faturas:view", "faturas:manage",
	"financeiro:view",
	"settings:manage",
}

func defaultRegions() []Region {
	return []Region{
		{ID: "zona-sul", Name: "Zona Sul"},
		{ID: "zona-norte", Name: "Zona Norte"},
		{ID: "zona-oeste", Name: "Zona Oeste"},
		{ID: "zona-leste", Name: "Zona Leste"},
		{ID: "centro", Name: "Centro"},
	}
}

func defaultNeighborhoods() []Neighborhood {
	rate := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	return []Neighborhood{
		{ID: uuid.NewString(), Name: "Copacabana", Fee: rate("7.00"), RegionID: "zona-sul"},
		{ID: uuid.NewString(), Name: "Ipanema", Fee: rate("8.50"), RegionID: "zona-sul"},
		{ID: uuid.NewString(), Name: "Tijuca", Fee: rate("6.00"), RegionID: "zona-norte"},
		{ID: uuid.NewString(), Name: "Barra da Tijuca", Fee: rate("12.00"), RegionID: "zona-oeste"},
		{ID: uuid.NewString(), Name: "Tatuapé", Fee: rate("9.00"), RegionID: "zona-leste"},
		{ID: uuid.NewString(), Name: "Sé", Fee: rate("5.00"), RegionID: "centro"},
	}
}

func defaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: uuid.NewString(), Name: "Pix", Enabled: true, Description: "Pagamentos instantâneos via Pix."},
		{ID: uuid.NewString(), Name: "Cartão de Crédito", Enabled: false, Description: "Visa, Mastercard, etc. (requer gateway)."},
		{ID: uuid.NewString(), Name: "Dinheiro na Entrega", Enabled: true, Description: "Pagamento em espécie ao entregador."},
	}
}

func defaultReconciliationMethods() []ReconciliationMethod {
	return []ReconciliationMethod{
		{ID: "pix-levaetras", Name: "PIX Leva e Trás", Action: ActionNone},
		{ID: "dinheiro-levaetras", Name: "Dinheiro Leva e Trás", Action: ActionNone},
		{ID: "faturar-taxa", Name: "Faturar Taxa (Pago pela Loja)", Action: ActionGenerateFeeDebit},
		{ID: "repassar-valor", Name: "Repassar Valor (Recebido pela Leva e Trás)", Action: ActionGeneratePassthroughCredit},
		{ID: "pix-loja", Name: "PIX Loja (Resolvido)", Action: ActionNone},
	}
}

func defaultRoles() []Role {
	return []Role{
		{
			ID:          "admin-master",
			Name:        "Administrador Master",
			Description: "Acesso total a todas as funcionalidades do sistema.",
			Permissions: allPermissions,
		},
		{
			ID:          "gerente-logistica",
			Name:        "Gerente de Logística",
			Description: "Gerencia solicitações e entregadores, mas não tem acesso ao financeiro.",
			Permissions: []string{
				"dashboard:view", "solicitacoes:view", "solicitacoes:create", "solicitacoes:edit",
				"solicitacoes:manage_status", "clientes:view", "entregadores:view",
				"entregadores:create", "entregadores:edit", "entregas:view",
			},
		},
	}
}

func defaultUsers() []User {
	user := func(id, name, email string, kind UserKind, roleID string) User {
		return User{ID: id, Name: name, Email: email, Kind: kind, RoleID: roleID, Avatar: avatar.URL(name)}
	}

	return []User{
		user("admin-1", "Ricardo Martins", "ricardo@empresa.com", UserAdmin, "admin-master"),
		user("admin-2", "Ana Silva", "ana.silva@empresa.com", UserAdmin, "gerente-logistica"),
		user("entregador-1", "Carlos Souza", "carlos.souza@entregas.com", UserCourier, ""),
		user("client-1", "Padaria Pão Quente", "padaria@email.com", UserClient, ""),
		user("client-2", "Restaurante Sabor Divino", "restaurante@email.com", UserClient, ""),
	}
}
