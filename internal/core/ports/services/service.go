package services

// ServiceContainer holds instances of all the application services.
// Handlers and the operator CLI reach the reconciler only through it.
type ServiceContainer struct {
	Authorizer   CompanyAuthorizerSvc
	Resolver     AccountResolverSvc
	Generator    LineGeneratorSvc
	Editor       EntryEditorSvc
	Entries      EntryReaderSvc
	Audit        AuditLoggerSvc
	Synchronizer DocumentSynchronizerSvc
}
