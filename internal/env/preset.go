// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package env

// PresetSourceCode is the template new projects start with. The $NAME$
// tokens are replaced by the code generator.
const PresetSourceCode = `#include <FastLED.h>

#define LED_PIN $LED_PIN$
#define LED_AMT $LED_AMOUNT$

// Fast-led api
CRGB leds[LED_AMT];

$VARIABLES$

$FUNC_DEFS$

void setup(){
    // Setups fastled-library
    FastLED.addLeds<NEOPIXEL, LED_PIN>(leds, LED_AMT);

$SETUP_CODE$
}

void loop(){
$RUN_CODE$
}
`
