// Package utils builds the ambient services every gitp command shares: the
// viper-backed ConfigurationLoader that layers embedded defaults, config files
// and GITP_* environment variables, and the LoggerFactory that produces zap
// loggers in console or structured form.
package utils
