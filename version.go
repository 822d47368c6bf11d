package beypark

// BeyparkVersion is set at build time with -ldflags "-X github.com/beypark/beypark.BeyparkVersion=..."
var BeyparkVersion = "dev"
