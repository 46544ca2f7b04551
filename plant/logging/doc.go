// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging configures the plant's internal logs.

Every package logs through logrus. Internal logs go to stderr unless SetOutput
redirects them; the level is chosen once at startup with SetLogLevel. Container
controllers emit debug entries when a caller is deferred or released, cranes
and the replacement crew log each cycle at debug level and failures at warn.
*/
package logging
