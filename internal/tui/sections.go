package tui

// section is one entry of the sidebar navigation.
type section struct {
	id      string
	label   string
	icon    string // unicode
	iconASC string // ascii fallback
	body    string // markdown shown in the content pane
}

func (s section) glyph() string {
	if glyphs() == glyphSetASCII {
		return s.iconASC
	}
	return s.icon
}

var consoleSections = []section{
	{
		id: "dashboard", label: "Dashboard", icon: "⌂", iconASC: "D",
		body: "# Dashboard\n\nToday's sales, open credits and cash register balances at a glance.",
	},
	{
		id: "sales", label: "Sales", icon: "$", iconASC: "$",
		body: "# Sales\n\nRecord a sale, attach line items and print the receipt.\n\n- cash or credit\n- per-line subtotals",
	},
	{
		id: "customers", label: "Customers", icon: "☺", iconASC: "C",
		body: "# Customers\n\nCustomer directory with contact details and outstanding balance.",
	},
	{
		id: "products", label: "Products", icon: "▦", iconASC: "P",
		body: "# Products\n\nCatalog, prices and stock levels.",
	},
	{
		id: "credits", label: "Credits", icon: "◔", iconASC: "R",
		body: "# Credits\n\nSales on credit, their schedule and the remaining balance.",
	},
	{
		id: "payments", label: "Payments", icon: "✚", iconASC: "+",
		body: "# Payments\n\nInstallments received against open credits.",
	},
	{
		id: "registers", label: "Cash registers", icon: "▤", iconASC: "#",
		body: "# Cash registers\n\nRegisters, their movements and the running balance of each one.",
	},
	{
		id: "transfers", label: "Transfers", icon: "⇄", iconASC: "T",
		body: "# Transfers\n\nMove funds between cash registers.",
	},
	{
		id: "reports", label: "Reports", icon: "≡", iconASC: "=",
		body: "# Reports\n\nSales, collections and commissions by period.",
	},
	{
		id: "users", label: "Users", icon: "♙", iconASC: "U",
		body: "# Users\n\nConsole accounts, roles and commission rates.",
	},
	{
		id: "backups", label: "Backups", icon: "↺", iconASC: "B",
		body: "# Backups\n\nCreate, download and restore database backups.",
	},
	{
		id: "settings", label: "Settings", icon: "✱", iconASC: "*",
		body: "# Settings\n\nBusiness details printed on receipts and documents.",
	},
}
