package industry

import "github.com/m04kA/InternHub-Service/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
