package template

import "github.com/willimj3/bella-document-review/internal/model"

// builtins are the shipped column templates, one per common legal document
// category.
var builtins = []model.Template{
	{
		Name:            "M&A Deal Points",
		Description:     "Extract key terms from SPAs and merger agreements",
		TargetDocuments: "SPAs, Merger Agreements",
		Columns: []model.TemplateColumn{
			{Name: "Purchase Price", Prompt: "What is the total purchase price or consideration for this transaction?", Type: model.ColumnTypeCurrency},
			{Name: "Closing Date", Prompt: "What is the expected or actual closing date for this transaction?", Type: model.ColumnTypeDate},
			{Name: "Reps & Warranties", Prompt: "Summarize the key representations and warranties made by the seller.", Type: model.ColumnTypeText},
			{Name: "Indemnification Cap", Prompt: "What is the maximum indemnification cap or liability limit?", Type: model.ColumnTypeCurrency},
			{Name: "Escrow Amount", Prompt: "What is the escrow amount or holdback, if any?", Type: model.ColumnTypeCurrency},
			{Name: "Material Adverse Change", Prompt: "How is Material Adverse Change (MAC) or Material Adverse Effect (MAE) defined?", Type: model.ColumnTypeText},
			{Name: "Closing Conditions", Prompt: "What are the key conditions precedent to closing?", Type: model.ColumnTypeText},
		},
	},
	{
		Name:            "Lease Review",
		Description:     "Analyze commercial lease agreements",
		TargetDocuments: "Commercial Leases",
		Columns: []model.TemplateColumn{
			{Name: "Monthly Rent", Prompt: "What is the monthly base rent amount?", Type: model.ColumnTypeCurrency},
			{Name: "Lease Term", Prompt: "What is the initial term length of the lease?", Type: model.ColumnTypeText},
			{Name: "Renewal Options", Prompt: "What renewal options does the tenant have, including terms and notice requirements?", Type: model.ColumnTypeText},
			{Name: "Termination Rights", Prompt: "What early termination rights exist for either party?", Type: model.ColumnTypeText},
			{Name: "Rent Escalation", Prompt: "How does rent escalate over the lease term (fixed increases, CPI, etc.)?", Type: model.ColumnTypeText},
			{Name: "Security Deposit", Prompt: "What is the security deposit amount?", Type: model.ColumnTypeCurrency},
			{Name: "Permitted Use", Prompt: "What is the permitted use of the premises?", Type: model.ColumnTypeText},
			{Name: "Assignment Rights", Prompt: "Can the tenant assign or sublease, and under what conditions?", Type: model.ColumnTypeText},
		},
	},
	{
		Name:            "Service Agreements",
		Description:     "Review MSAs and SOWs for key commercial terms",
		TargetDocuments: "MSAs, SOWs, Service Contracts",
		Columns: []model.TemplateColumn{
			{Name: "Contract Value", Prompt: "What is the total contract value or fees?", Type: model.ColumnTypeCurrency},
			{Name: "Term", Prompt: "What is the initial term of the agreement?", Type: model.ColumnTypeText},
			{Name: "Governing Law", Prompt: "What is the governing law or jurisdiction?", Type: model.ColumnTypeText},
			{Name: "Termination Notice", Prompt: "How many days written notice is required to terminate?", Type: model.ColumnTypeNumber},
			{Name: "Auto-Renewal", Prompt: "Does this agreement automatically renew?", Type: model.ColumnTypeBoolean},
			{Name: "Liability Cap", Prompt: "What is the limitation of liability cap?", Type: model.ColumnTypeCurrency},
			{Name: "Indemnification", Prompt: "Summarize the key indemnification obligations.", Type: model.ColumnTypeText},
			{Name: "Insurance Requirements", Prompt: "What insurance coverage is required?", Type: model.ColumnTypeText},
		},
	},
	{
		Name:            "Employment Agreements",
		Description:     "Extract terms from offer letters and employment contracts",
		TargetDocuments: "Offer Letters, Employment Contracts",
		Columns: []model.TemplateColumn{
			{Name: "Base Salary", Prompt: "What is the annual base salary?", Type: model.ColumnTypeCurrency},
			{Name: "Start Date", Prompt: "What is the employment start date?", Type: model.ColumnTypeDate},
			{Name: "Title", Prompt: "What is the job title or position?", Type: model.ColumnTypeText},
			{Name: "Reporting To", Prompt: "Who does this position report to?", Type: model.ColumnTypeText},
			{Name: "Non-Compete", Prompt: "Is there a non-compete clause? If so, what is its duration and scope?", Type: model.ColumnTypeText},
			{Name: "Non-Solicit", Prompt: "Is there a non-solicitation clause? If so, what are its terms?", Type: model.ColumnTypeText},
			{Name: "Severance", Prompt: "What severance is provided upon termination?", Type: model.ColumnTypeText},
			{Name: "Equity/Options", Prompt: "What equity or stock options are granted?", Type: model.ColumnTypeText},
		},
	},
	{
		Name:            "NDA Review",
		Description:     "Analyze confidentiality agreements",
		TargetDocuments: "NDAs, Confidentiality Agreements",
		Columns: []model.TemplateColumn{
			{Name: "Parties", Prompt: "Who are the parties to this agreement?", Type: model.ColumnTypeText},
			{Name: "Effective Date", Prompt: "What is the effective date of the agreement?", Type: model.ColumnTypeDate},
			{Name: "Term", Prompt: "What is the term or duration of confidentiality obligations?", Type: model.ColumnTypeText},
			{Name: "Confidential Info Definition", Prompt: "How is Confidential Information defined?", Type: model.ColumnTypeText},
			{Name: "Permitted Disclosures", Prompt: "What disclosures are permitted or excluded?", Type: model.ColumnTypeText},
			{Name: "Return/Destruction", Prompt: "What are the requirements for return or destruction of confidential information?", Type: model.ColumnTypeText},
			{Name: "Governing Law", Prompt: "What is the governing law?", Type: model.ColumnTypeText},
		},
	},
	{
		Name:            "Credit Agreements",
		Description:     "Review loan documents for key financial terms",
		TargetDocuments: "Loan Agreements, Credit Facilities",
		Columns: []model.TemplateColumn{
			{Name: "Principal Amount", Prompt: "What is the principal loan amount or credit facility size?", Type: model.ColumnTypeCurrency},
			{Name: "Interest Rate", Prompt: "What is the interest rate (fixed or floating, and any spread)?", Type: model.ColumnTypeText},
			{Name: "Maturity Date", Prompt: "What is the maturity date of the loan?", Type: model.ColumnTypeDate},
			{Name: "Financial Covenants", Prompt: "What are the key financial covenants (debt ratios, coverage ratios, etc.)?", Type: model.ColumnTypeText},
			{Name: "Events of Default", Prompt: "What are the main events of default?", Type: model.ColumnTypeText},
			{Name: "Prepayment Terms", Prompt: "Are there prepayment penalties or requirements?", Type: model.ColumnTypeText},
		},
	},
}
