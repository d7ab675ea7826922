package server

import "github.com/sirupsen/logrus"

var log = logrus.StandardLogger()
